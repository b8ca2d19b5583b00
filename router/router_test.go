package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"article-cms/config"
	"article-cms/models"
	"article-cms/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type RouterTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	tokens services.TokenService

	vera  models.User
	umut  models.User
	olga  models.User
	super models.User

	english models.Language
	news    models.Category
}

func (suite *RouterTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.tokens = services.NewTokenService([]byte("router-test-secret"), time.Hour)
}

func (suite *RouterTestSuite) SetupTest() {
	dsn := fmt.Sprintf("file:router-%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), config.GormConfig("silent"))
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(config.Migrate(db))
	suite.Require().NoError(config.EnsureReferenceData(db))
	suite.db = db

	var capability models.Permission
	suite.Require().NoError(db.Where("name = ?", models.CapabilityArticleOwnership).First(&capability).Error)
	var superRole models.Role
	suite.Require().NoError(db.First(&superRole, models.RoleSuper).Error)

	editor := models.Role{Name: "editor", Permissions: []models.Permission{capability}}
	suite.Require().NoError(db.Create(&editor).Error)

	suite.vera = suite.createUser("Vera", editor)
	suite.umut = suite.createUser("Umut", editor)
	suite.olga = suite.createUser("Olga")
	suite.super = suite.createUser("Sami", superRole)

	suite.english = models.Language{Slug: "en", Name: "English"}
	suite.Require().NoError(db.Create(&suite.english).Error)
	suite.news = models.Category{Name: "news"}
	suite.Require().NoError(db.Create(&suite.news).Error)

	suite.router = SetupRouter(db, Options{Tokens: suite.tokens, PerPage: 5, TrashedPerPage: 10})
}

func (suite *RouterTestSuite) TearDownTest() {
	if sqlDB, err := suite.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (suite *RouterTestSuite) createUser(name string, roles ...models.Role) models.User {
	user := models.User{Name: name, Email: name + "@example.com", Roles: roles}
	suite.Require().NoError(suite.db.Create(&user).Error)
	return user
}

func (suite *RouterTestSuite) request(user *models.User, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		token, err := suite.tokens.IssueToken(user)
		suite.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RouterTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (suite *RouterTestSuite) createArticle(user *models.User, slug string) {
	w := suite.request(user, http.MethodPost, "/api/v1/article", map[string]interface{}{
		"slug":        slug,
		"image":       "images/" + slug + ".png",
		"categories":  []uint{suite.news.ID},
		"title":       "T",
		"sub_title":   "S",
		"body":        "B",
		"keywords":    []string{"go"},
		"published":   true,
		"language_id": suite.english.ID,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
}

func (suite *RouterTestSuite) listSlugs(user *models.User, path string) []string {
	w := suite.request(user, http.MethodGet, path, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data []models.Article `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))

	slugs := make([]string, 0, len(body.Data))
	for _, a := range body.Data {
		slugs = append(slugs, a.Slug)
	}
	return slugs
}

func (suite *RouterTestSuite) TestHealth() {
	w := suite.request(nil, http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *RouterTestSuite) TestRequiresBearerToken() {
	w := suite.request(nil, http.MethodGet, "/api/v1/articles", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/articles", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	suite.Equal(http.StatusUnauthorized, rec.Code)
}

func (suite *RouterTestSuite) TestProfile() {
	w := suite.request(&suite.vera, http.MethodGet, "/api/v1/profile", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("Vera", suite.decode(w)["name"])
}

func (suite *RouterTestSuite) TestCapabilityRequired() {
	w := suite.request(&suite.olga, http.MethodGet, "/api/v1/articles", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	body := suite.decode(w)
	suite.Equal("Unauthorized", body["header"])
	suite.Equal("error", body["state"])
}

func (suite *RouterTestSuite) TestCreateAndShowArticle() {
	suite.createArticle(&suite.vera, "s1")

	w := suite.request(&suite.vera, http.MethodGet, "/api/v1/article/s1", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var article models.Article
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &article))
	suite.Equal("s1", article.Slug)
	suite.Require().NotNil(article.Author)
	suite.Equal("Vera", article.Author.Name)
	suite.Len(article.Contents, 1)
	suite.Len(article.Categories, 1)

	w = suite.request(&suite.vera, http.MethodGet, fmt.Sprintf("/api/v1/article/%d", article.ID), nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(&suite.vera, http.MethodGet, "/api/v1/article/unknown", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *RouterTestSuite) TestCreateArticleValidation() {
	w := suite.request(&suite.vera, http.MethodPost, "/api/v1/article", map[string]interface{}{
		"image": "img.png",
	})
	suite.Require().Equal(http.StatusBadRequest, w.Code)

	errs, ok := suite.decode(w)["errors"].(map[string]interface{})
	suite.Require().True(ok)
	suite.Contains(errs, "slug")
	suite.Contains(errs, "sub_title")
	suite.Contains(errs, "language_id")
	suite.NotContains(errs, "image")
}

func (suite *RouterTestSuite) TestDuplicateSlugConflicts() {
	suite.createArticle(&suite.vera, "s1")

	w := suite.request(&suite.umut, http.MethodPost, "/api/v1/article", map[string]interface{}{
		"slug": "s1", "image": "i", "title": "T", "sub_title": "S", "body": "B",
		"keywords": []string{"k"}, "published": false, "language_id": suite.english.ID,
	})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *RouterTestSuite) TestAccessRequiresGrant() {
	suite.createArticle(&suite.vera, "s1")

	w := suite.request(&suite.umut, http.MethodGet, "/api/v1/article/s1", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(&suite.vera, http.MethodPut, "/api/v1/permission/s1", map[string]interface{}{
		"permissions": []uint{suite.umut.ID},
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal("OK", suite.decode(w)["action"])

	w = suite.request(&suite.umut, http.MethodGet, "/api/v1/article/s1", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(&suite.umut, http.MethodPut, "/api/v1/permission/s1", map[string]interface{}{
		"permissions": []uint{},
	})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *RouterTestSuite) TestPermissionRoster() {
	suite.createArticle(&suite.vera, "s1")

	w := suite.request(&suite.super, http.MethodGet, "/api/v1/permission/s1", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var roster models.PermissionRoster
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &roster))
	suite.Len(roster.Users, 2)
	suite.Require().Len(roster.Permissions, 1)
	suite.Equal(suite.vera.ID, roster.Permissions[0].UserID)

	w = suite.request(&suite.umut, http.MethodGet, "/api/v1/permission/s1", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *RouterTestSuite) TestGrantedUserMovesArticleToTrash() {
	suite.createArticle(&suite.vera, "s1")
	suite.createArticle(&suite.vera, "s2")

	w := suite.request(&suite.vera, http.MethodPut, "/api/v1/permission/s1", map[string]interface{}{
		"permissions": []uint{suite.vera.ID, suite.umut.ID},
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(&suite.umut, http.MethodDelete, "/api/v1/article/s1", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal("success", suite.decode(w)["state"])

	suite.Equal([]string{"s2"}, suite.listSlugs(&suite.vera, "/api/v1/articles"))
	suite.Equal([]string{"s1"}, suite.listSlugs(&suite.vera, "/api/v1/articles/trashed"))

	w = suite.request(&suite.vera, http.MethodGet, "/api/v1/article/s1", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *RouterTestSuite) TestRestoreAndForceDelete() {
	suite.createArticle(&suite.vera, "s1")

	w := suite.request(&suite.vera, http.MethodDelete, "/api/v1/force-delete/s1", nil)
	suite.Equal(http.StatusNotFound, w.Code, "active articles cannot be purged")

	w = suite.request(&suite.vera, http.MethodDelete, "/api/v1/article/s1", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(&suite.vera, http.MethodPost, "/api/v1/restore/s1", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal([]string{"s1"}, suite.listSlugs(&suite.vera, "/api/v1/articles"))
	suite.Empty(suite.listSlugs(&suite.vera, "/api/v1/articles/trashed"))

	w = suite.request(&suite.vera, http.MethodGet, "/api/v1/content/s1/en", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("T", suite.decode(w)["title"])

	w = suite.request(&suite.vera, http.MethodDelete, "/api/v1/article/s1", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	w = suite.request(&suite.vera, http.MethodDelete, "/api/v1/force-delete/s1", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	suite.Empty(suite.listSlugs(&suite.vera, "/api/v1/articles/trashed"))
	for _, model := range []interface{}{
		&models.Article{},
		&models.ArticleContent{},
		&models.ArticleCategory{},
		&models.ArticlePermission{},
		&models.ArticleRoom{},
	} {
		var count int64
		suite.Require().NoError(suite.db.Unscoped().Model(model).Count(&count).Error)
		suite.Zero(count, "%T", model)
	}
}

func (suite *RouterTestSuite) TestContentVersioning() {
	suite.createArticle(&suite.vera, "s1")

	update := map[string]interface{}{
		"title": "T2", "sub_title": "S", "body": "B",
		"keywords": []string{"go"}, "published": true,
	}
	w := suite.request(&suite.vera, http.MethodPut, "/api/v1/content/s1/en", update)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request(&suite.vera, http.MethodGet, "/api/v1/content/s1/en", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	content := suite.decode(w)
	suite.Equal("T2", content["title"])
	suite.EqualValues(2, content["version"])

	w = suite.request(&suite.vera, http.MethodGet, "/api/v1/content/s1/en/archives", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var archives []models.ArticleArchive
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &archives))
	suite.Require().Len(archives, 1)
	suite.Equal("T", archives[0].Title)
	suite.Equal(1, archives[0].Version)

	w = suite.request(&suite.vera, http.MethodPost, "/api/v1/content/s1/en", update)
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.request(&suite.vera, http.MethodGet, "/api/v1/content/s1/xx", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *RouterTestSuite) TestListPagination() {
	for i := 0; i < 7; i++ {
		suite.createArticle(&suite.vera, fmt.Sprintf("page-%d", i))
	}

	w := suite.request(&suite.vera, http.MethodGet, "/api/v1/articles", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Len(body["data"], 5)

	pagination := body["pagination"].(map[string]interface{})
	suite.EqualValues(7, pagination["total_records"])
	suite.EqualValues(2, pagination["total_pages"])

	suite.Len(suite.listSlugs(&suite.vera, "/api/v1/articles?page=2"), 2)
	suite.Len(suite.listSlugs(&suite.vera, "/api/v1/articles?per-page=3"), 3)
}

func (suite *RouterTestSuite) TestCatalog() {
	w := suite.request(&suite.olga, http.MethodGet, "/api/v1/languages", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var languages []models.Language
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &languages))
	suite.Require().Len(languages, 1)
	suite.Equal("en", languages[0].Slug)

	w = suite.request(&suite.olga, http.MethodGet, "/api/v1/categories", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
