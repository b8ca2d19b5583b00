package router

import (
	"net/http"

	"article-cms/handlers"
	"article-cms/helper"
	"article-cms/middleware"
	"article-cms/models"
	"article-cms/repositories"
	"article-cms/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Options struct {
	Tokens         services.TokenService
	PerPage        int
	TrashedPerPage int
}

// SetupRouter wires repositories, services and handlers on top of db.
func SetupRouter(db *gorm.DB, opts Options) *gin.Engine {
	h := helper.NewHTTPHelper()

	// Repositories
	tx := repositories.NewTransactor(db)
	articleRepo := repositories.NewArticleRepository(db)
	contentRepo := repositories.NewContentRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	languageRepo := repositories.NewLanguageRepository(db)
	permissionRepo := repositories.NewPermissionRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// Services
	resolver := services.NewArticleResolver(articleRepo)
	gate := services.NewAccessGate(permissionRepo, userRepo)
	contentService := services.NewContentService(tx, contentRepo, languageRepo)
	categoryService := services.NewCategoryService(tx, categoryRepo, languageRepo)
	articleService := services.NewArticleService(tx, articleRepo, languageRepo, permissionRepo, contentService, categoryService)
	permissionService := services.NewPermissionService(tx, permissionRepo, userRepo, gate)
	userService := services.NewUserService(userRepo)

	// Handlers
	articleHandler := handlers.NewArticleHandler(articleService, h, opts.PerPage, opts.TrashedPerPage)
	contentHandler := handlers.NewContentHandler(contentService, h)
	permissionHandler := handlers.NewPermissionHandler(permissionService, h)
	profileHandler := handlers.NewProfileHandler(userService, h)
	catalogHandler := handlers.NewCatalogHandler(categoryService, h)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(opts.Tokens))
	{
		v1.GET("/profile", profileHandler.GetProfile)
		v1.GET("/categories", catalogHandler.GetCategories)
		v1.GET("/languages", catalogHandler.GetLanguages)

		articles := v1.Group("")
		articles.Use(middleware.RequireCapability(gate, models.CapabilityArticleOwnership))
		{
			active := middleware.ArticleAccess(resolver, gate, repositories.ScopeActive)
			trashed := middleware.ArticleAccess(resolver, gate, repositories.ScopeOnlyTrashed)

			articles.GET("/articles", articleHandler.GetArticles)
			articles.GET("/articles/trashed", articleHandler.GetTrashedArticles)

			articles.POST("/article", articleHandler.CreateArticle)
			articles.GET("/article/:slug", active, articleHandler.GetArticle)
			articles.PUT("/article/:slug", active, articleHandler.UpdateArticle)
			articles.DELETE("/article/:slug", active, articleHandler.DeleteArticle)

			articles.POST("/restore/:slug", trashed, articleHandler.RestoreArticle)
			articles.DELETE("/force-delete/:slug", trashed, articleHandler.ForceDeleteArticle)

			articles.GET("/content/:slug/:language", active, contentHandler.GetContent)
			articles.POST("/content/:slug/:language", active, contentHandler.CreateContent)
			articles.PUT("/content/:slug/:language", active, contentHandler.UpdateContent)
			articles.GET("/content/:slug/:language/archives", active, contentHandler.GetArchives)

			// Permission checks happen in the service: super role holders
			// may manage articles they hold no grant on.
			resolved := middleware.ResolveArticle(resolver, repositories.ScopeActive)
			articles.GET("/permission/:slug", resolved, permissionHandler.GetPermission)
			articles.PUT("/permission/:slug", resolved, permissionHandler.PutPermission)
		}
	}

	return router
}
