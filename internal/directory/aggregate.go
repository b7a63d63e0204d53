package directory

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ignatzorin/skill-connector/internal/goroutine"
	"github.com/ignatzorin/skill-connector/internal/logger"
	"github.com/ignatzorin/skill-connector/internal/metrics"
	"github.com/ignatzorin/skill-connector/internal/models"
)

// DefaultFanoutLimit — сколько запросов навыков выполняется одновременно.
const DefaultFanoutLimit = 8

// Options настраивают агрегацию.
type Options struct {
	// FanoutLimit ограничивает число параллельных запросов навыков.
	FanoutLimit int
	// Categories используется, чтобы проставить category_name навыкам без него.
	Categories CategoryIndex
}

// Aggregate загружает пользователей, затем навыки каждого пользователя параллельно.
//
// Ошибка загрузки списка пользователей возвращается как есть. Ошибка (или паника)
// при загрузке навыков одного пользователя не прерывает агрегацию: у него будет
// ноль навыков, а сбой попадёт в Result.Failures. Если ctx отменён, возвращается ctx.Err().
func Aggregate(ctx context.Context, f Fetcher, opts Options) (*Result, error) {
	users, err := f.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("directory: список пользователей: %w", err)
	}

	limit := opts.FanoutLimit
	if limit <= 0 {
		limit = DefaultFanoutLimit
	}

	skills := make([][]models.Skill, len(users))
	errs := make([]error, len(users))

	var g errgroup.Group
	g.SetLimit(limit)

	for i := range users {
		g.Go(func() error {
			// Оставшиеся запросы не отправляем, если браузер уже ушёл.
			if ctx.Err() != nil {
				errs[i] = ctx.Err()
				return nil
			}
			errs[i] = goroutine.Run(func() error {
				list, err := f.ListUserSkills(ctx, users[i].ID)
				if err != nil {
					return err
				}
				skills[i] = list
				return nil
			})
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := logger.WithComponent("directory")
	result := &Result{Professionals: make([]Professional, 0, len(users))}

	for i, user := range users {
		if errs[i] != nil {
			metrics.FanoutFailuresTotal.Inc()
			log.WithError(errs[i]).WithField("user_id", user.ID).Warn("не удалось загрузить навыки пользователя")
			result.Failures = append(result.Failures, FetchFailure{UserID: user.ID, Err: errs[i]})
			skills[i] = nil
		}

		result.Professionals = append(result.Professionals, Professional{
			User:   user,
			Skills: resolveCategories(skills[i], opts.Categories),
		})
	}

	if result.Partial() {
		log.WithFields(logrus.Fields{
			"users":    len(users),
			"failures": len(result.Failures),
		}).Info("каталог собран частично")
	}

	return result, nil
}

func resolveCategories(skills []models.Skill, idx CategoryIndex) []models.Skill {
	if skills == nil {
		return []models.Skill{}
	}
	if len(idx) == 0 {
		return skills
	}
	for i := range skills {
		if skills[i].CategoryName == "" {
			if name, ok := idx[skills[i].CategoryID]; ok {
				skills[i].CategoryName = name
			}
		}
	}
	return skills
}
