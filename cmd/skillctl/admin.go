package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/skill-connector/internal/backend"
	"github.com/ignatzorin/skill-connector/internal/dto"
	"github.com/ignatzorin/skill-connector/internal/models"
)

const maxActivityLimit = 500

// adminAuth — как команда получает токен администратора.
type adminAuth struct {
	email    string
	password string
	token    string
}

func newAdminCmd(a *app) *cobra.Command {
	auth := &adminAuth{}

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Команды администратора",
		Long: `Команды администратора. Токен берётся из --token или ` + adminTokenEnv + `,
иначе выполняется вход по --email и --password.`,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&auth.email, "email", "", "email администратора")
	flags.StringVar(&auth.password, "password", "", "пароль администратора")
	flags.StringVar(&auth.token, "token", "", "готовый токен администратора")

	var limit int
	activity := &cobra.Command{
		Use:   "activity",
		Short: "Последние записи журнала действий",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAdmin(cmd.Context(), a, auth, func(api *backend.Client, token string) error {
				return runActivity(cmd.Context(), a, api, token, limit)
			})
		},
	}
	activity.Flags().IntVarP(&limit, "limit", "n", 50, "сколько записей показать (не больше 500)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Сводка платформы",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withAdmin(cmd.Context(), a, auth, func(api *backend.Client, token string) error {
					return runStats(cmd.Context(), a, api, token)
				})
			},
		},
		&cobra.Command{
			Use:   "users",
			Short: "Все пользователи платформы",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withAdmin(cmd.Context(), a, auth, func(api *backend.Client, token string) error {
					return runUsers(cmd.Context(), a, api, token)
				})
			},
		},
		activity,
	)

	return cmd
}

// withAdmin получает токен и вызывает fn.
func withAdmin(ctx context.Context, a *app, auth *adminAuth, fn func(api *backend.Client, token string) error) error {
	api := a.client()

	token := auth.token
	if token == "" {
		token = os.Getenv(adminTokenEnv)
	}
	if token == "" {
		if auth.email == "" || auth.password == "" {
			return errors.New("нужен --token, " + adminTokenEnv + " или пара --email/--password")
		}
		result, err := api.AdminLogin(ctx, models.LoginRequest{Email: auth.email, Password: auth.password})
		if err != nil {
			return fmt.Errorf("вход администратора: %w", err)
		}
		token = result.AccessToken
	}

	return fn(api, token)
}

func runStats(ctx context.Context, a *app, api *backend.Client, token string) error {
	stats, err := api.AdminStats(ctx, token)
	if err != nil {
		return fmt.Errorf("сводка: %w", err)
	}

	if a.asJSON {
		return writeJSON(a.out, stats)
	}

	t := newTable(a.out, "ПОКАЗАТЕЛЬ", "ЗНАЧЕНИЕ")
	t.row("Пользователей", strconv.Itoa(stats.TotalUsers))
	t.row("Активных", strconv.Itoa(stats.ActiveUsers))
	t.row("Навыков", strconv.Itoa(stats.TotalSkills))
	t.row("Администраторов", strconv.Itoa(stats.TotalAdmins))
	if stats.PlatformStatus != "" {
		t.row("Статус", stats.PlatformStatus)
	}
	return t.flush()
}

func runUsers(ctx context.Context, a *app, api *backend.Client, token string) error {
	users, err := api.AdminListUsers(ctx, token)
	if err != nil {
		return fmt.Errorf("пользователи: %w", err)
	}

	rows := dto.NewAdminUserRows(users)
	if a.asJSON {
		return writeJSON(a.out, rows)
	}

	t := newTable(a.out, "EMAIL", "ИМЯ", "ТЕЛЕФОН", "ПРОФИЛЬ", "СТАТУС", "С НАМИ С")
	for _, r := range rows {
		t.row(r.Email, r.FullName, r.Phone, strconv.Itoa(r.Completeness)+"%", r.Status, r.Joined)
	}
	return t.flush()
}

func runActivity(ctx context.Context, a *app, api *backend.Client, token string, limit int) error {
	if limit <= 0 {
		limit = 50
	}
	limit = min(limit, maxActivityLimit)

	logs, err := api.AdminActivityLogs(ctx, token, limit)
	if err != nil {
		return fmt.Errorf("журнал: %w", err)
	}

	rows := dto.NewActivityRows(logs, time.Local)
	if a.asJSON {
		return writeJSON(a.out, rows)
	}

	t := newTable(a.out, "ВРЕМЯ", "АДМИНИСТРАТОР", "ДЕЙСТВИЕ", "ОБЪЕКТ", "ДЕТАЛИ")
	for _, r := range rows {
		t.row(r.When, r.AdminID.String(), r.Action, r.TargetType, r.Details)
	}
	return t.flush()
}
