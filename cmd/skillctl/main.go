// Command skillctl — консольный клиент каталога Skill Connector:
// поиск специалистов, просмотр профиля и сводки для администратора.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ignatzorin/skill-connector/internal/backend"
	"github.com/ignatzorin/skill-connector/internal/directory"
	"github.com/ignatzorin/skill-connector/internal/logger"
)

const (
	defaultBackendURL = "http://localhost:8000"
	adminTokenEnv     = "SKILLCTL_ADMIN_TOKEN"
)

// app — общие флаги всех команд.
type app struct {
	backendURL  string
	timeout     time.Duration
	fanoutLimit int
	asJSON      bool
	verbose     bool

	out  io.Writer
	errw io.Writer
}

func (a *app) errOut() io.Writer {
	return a.errw
}

func (a *app) client() *backend.Client {
	return backend.NewClient(a.backendURL, a.timeout)
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errw: errOut}

	backendURL := os.Getenv("BACKEND_BASE_URL")
	if backendURL == "" {
		backendURL = defaultBackendURL
	}

	root := &cobra.Command{
		Use:   "skillctl",
		Short: "Консольный клиент каталога Skill Connector",
		Long: `skillctl ходит в тот же REST бэкенд, что и портал, и собирает каталог
так же: пользователи × навыки × категории.

Команды:
  browse   - поиск специалистов по тексту и категории
  profile  - публичный профиль специалиста
  admin    - сводка, пользователи и журнал действий (нужен вход администратора)`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.verbose {
				logger.Init("debug")
				logger.SetTextFormatter()
				logger.Log.SetOutput(cmd.ErrOrStderr())
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.backendURL, "backend", backendURL, "адрес REST бэкенда (BACKEND_BASE_URL)")
	flags.DurationVar(&a.timeout, "timeout", 15*time.Second, "таймаут одного запроса к бэкенду")
	flags.IntVar(&a.fanoutLimit, "fanout", directory.DefaultFanoutLimit, "сколько запросов навыков выполнять параллельно")
	flags.BoolVar(&a.asJSON, "json", false, "вывод в JSON")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "подробные логи в stderr")

	root.AddCommand(
		newBrowseCmd(a),
		newProfileCmd(a),
		newAdminCmd(a),
	)

	return root
}

func main() {
	// .env необязателен, как и у портала.
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "ошибка:", err)
		stop()
		os.Exit(1)
	}
}
