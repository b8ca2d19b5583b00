package services

import (
	"context"
	"log/slog"

	"article-cms/models"
	"article-cms/repositories"
)

// ContentService owns the per-language content of articles and its version
// history.
type ContentService interface {
	GetLanguage(ctx context.Context, slug string) (*models.Language, error)
	GetContent(ctx context.Context, articleID, languageID uint) (*models.ArticleContent, error)
	CreateContent(ctx context.Context, articleID, languageID uint, fields models.ContentFields) (*models.ArticleContent, error)
	UpdateContent(ctx context.Context, articleID, languageID uint, fields models.ContentFields) (*models.ArticleContent, error)
	GetArchives(ctx context.Context, articleID, languageID uint) ([]models.ArticleArchive, error)
}

type contentService struct {
	tx           repositories.Transactor
	contentRepo  repositories.ContentRepository
	languageRepo repositories.LanguageRepository
}

func NewContentService(tx repositories.Transactor, contentRepo repositories.ContentRepository, languageRepo repositories.LanguageRepository) ContentService {
	return &contentService{
		tx:           tx,
		contentRepo:  contentRepo,
		languageRepo: languageRepo,
	}
}

func (s *contentService) GetLanguage(ctx context.Context, slug string) (*models.Language, error) {
	language, err := s.languageRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, storeError(err, "get language", "language not found")
	}
	return language, nil
}

func (s *contentService) GetContent(ctx context.Context, articleID, languageID uint) (*models.ArticleContent, error) {
	content, err := s.contentRepo.GetByPair(ctx, articleID, languageID)
	if err != nil {
		return nil, storeError(err, "get content", "content not found")
	}
	return content, nil
}

func (s *contentService) CreateContent(ctx context.Context, articleID, languageID uint, fields models.ContentFields) (*models.ArticleContent, error) {
	exists, err := s.contentRepo.Exists(ctx, articleID, languageID)
	if err != nil {
		return nil, storeError(err, "check content", "content not found")
	}
	if exists {
		return nil, models.NewConflict("content already exists for this language")
	}

	content := &models.ArticleContent{
		ArticleID:  articleID,
		LanguageID: languageID,
		Title:      fields.Title,
		SubTitle:   fields.SubTitle,
		Body:       fields.Body,
		Keywords:   fields.Keywords,
		Published:  fields.Published,
		Version:    1,
	}
	if err := s.contentRepo.Create(ctx, content); err != nil {
		return nil, storeError(err, "create content", "content not found")
	}
	return content, nil
}

// UpdateContent overwrites the live row. When title, sub title, body or
// keywords change, the previous row is archived first and the version is
// bumped by one. A published-only change leaves history and version alone.
func (s *contentService) UpdateContent(ctx context.Context, articleID, languageID uint, fields models.ContentFields) (*models.ArticleContent, error) {
	var updated *models.ArticleContent

	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		current, err := s.contentRepo.GetByPairForUpdate(ctx, articleID, languageID)
		if err != nil {
			return storeError(err, "load content", "content not found")
		}

		expected := current.Version
		if current.DiffersFrom(fields) {
			if err := s.contentRepo.CreateArchive(ctx, current.Snapshot()); err != nil {
				return storeError(err, "archive content", "content not found")
			}
			current.Version++
			slog.InfoContext(ctx, "content archived",
				"article_id", articleID,
				"language_id", languageID,
				"archived_version", expected,
			)
		}

		current.Title = fields.Title
		current.SubTitle = fields.SubTitle
		current.Body = fields.Body
		current.Keywords = fields.Keywords
		current.Published = fields.Published

		affected, err := s.contentRepo.UpdateIfVersion(ctx, current, expected)
		if err != nil {
			return storeError(err, "update content", "content not found")
		}
		if affected == 0 {
			return models.NewConflict("content was modified concurrently")
		}

		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *contentService) GetArchives(ctx context.Context, articleID, languageID uint) ([]models.ArticleArchive, error) {
	archives, err := s.contentRepo.GetArchives(ctx, articleID, languageID)
	if err != nil {
		return nil, storeError(err, "get archives", "content not found")
	}
	return archives, nil
}
