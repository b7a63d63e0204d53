package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/skill-connector/internal/directory"
	"github.com/ignatzorin/skill-connector/internal/dto"
	"github.com/ignatzorin/skill-connector/internal/logger"
	"github.com/ignatzorin/skill-connector/internal/models"
	"github.com/ignatzorin/skill-connector/internal/pkg/apperror"
	"github.com/ignatzorin/skill-connector/internal/validation"
)

// DirectoryAPI — публичные данные каталога.
type DirectoryAPI interface {
	directory.Fetcher
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// BrowseService собирает страницу каталога и публичный профиль.
type BrowseService struct {
	api         DirectoryAPI
	categories  *CategoryService
	fanoutLimit int
}

// NewBrowseService создаёт сервис.
func NewBrowseService(api DirectoryAPI, categories *CategoryService, fanoutLimit int) *BrowseService {
	return &BrowseService{api: api, categories: categories, fanoutLimit: fanoutLimit}
}

// Browse агрегирует каталог и применяет фильтр. Сбои бэкенда превращаются в notice,
// страница при этом отдаётся с тем, что удалось загрузить.
func (s *BrowseService) Browse(ctx context.Context, q directory.Query) (*dto.BrowsePage, error) {
	q.Text = strings.TrimSpace(q.Text)
	if err := validationError(validation.ValidateSearchQuery(q.Text)); err != nil {
		return nil, err
	}
	if q.Category == "" {
		q.Category = directory.CategoryAll
	}

	page := &dto.BrowsePage{
		Query:         q.Text,
		Category:      q.Category,
		Location:      q.Location,
		Categories:    []string{},
		Professionals: []dto.ProfessionalCard{},
	}

	var idx directory.CategoryIndex
	categories, err := s.categories.List(ctx)
	if err != nil {
		if cancelled(ctx) {
			return nil, ctx.Err()
		}
		page.Add(dto.NoticeWarning, noticeMessage(err, "Не удалось загрузить категории"))
	} else {
		idx = directory.NewCategoryIndex(categories)
		page.Categories = directory.CategoryNames(categories)
	}

	result, err := directory.Aggregate(ctx, s.api, directory.Options{
		FanoutLimit: s.fanoutLimit,
		Categories:  idx,
	})
	if err != nil {
		if cancelled(ctx) {
			return nil, ctx.Err()
		}
		logger.WithComponent("browse").WithError(err).Warn("каталог не загружен")
		page.Add(dto.NoticeError, noticeMessage(err, "Не удалось загрузить специалистов"))
		page.Ensure()
		return page, nil
	}

	if result.Partial() {
		page.Add(dto.NoticeWarning, partialNotice(len(result.Failures)))
	}

	for _, p := range directory.Filter(result.Professionals, q) {
		page.Professionals = append(page.Professionals, dto.NewProfessionalCard(p))
	}
	page.Total = len(page.Professionals)
	page.Ensure()

	return page, nil
}

// Professional возвращает публичный профиль специалиста.
func (s *BrowseService) Professional(ctx context.Context, id uuid.UUID) (*dto.ProfilePage, error) {
	user, err := s.api.GetUser(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.Wrap(err, apperror.ErrCodeNotFound, apperror.ErrUserNotFound.Message)
		}
		return nil, err
	}

	view := dto.NewUserView(*user)
	page := &dto.ProfilePage{
		User:        view,
		Skills:      []dto.SkillView{},
		MemberSince: view.MemberSince,
		ChatURL:     "/chat/" + user.ID.String(),
	}

	var idx directory.CategoryIndex
	if categories, err := s.categories.List(ctx); err == nil {
		idx = directory.NewCategoryIndex(categories)
	}

	skills, err := s.api.ListUserSkills(ctx, id)
	if err != nil {
		if cancelled(ctx) {
			return nil, ctx.Err()
		}
		page.Add(dto.NoticeWarning, noticeMessage(err, "Не удалось загрузить навыки"))
		skills = nil
	}

	page.Skills = dto.NewSkillViews(skills, idx)
	page.SkillCount = len(skills)
	page.Rate = directory.RateLabel(directory.AverageRate(skills))
	page.Experience = fmt.Sprintf("%d+ yrs", directory.MaxExperience(skills))
	page.Ensure()

	return page, nil
}
