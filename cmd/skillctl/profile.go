package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ignatzorin/skill-connector/internal/directory"
	"github.com/ignatzorin/skill-connector/internal/models"
)

type profileOutput struct {
	User         models.User          `json:"user"`
	Completeness int                  `json:"profile_completeness"`
	Skills       []directory.SkillRow `json:"skills"`
}

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile <id>",
		Short: "Публичный профиль специалиста",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("неверный id %q: %w", args[0], err)
			}
			return runProfile(cmd.Context(), a, id)
		},
	}
}

func runProfile(ctx context.Context, a *app, id uuid.UUID) error {
	api := a.client()

	user, err := api.GetUser(ctx, id)
	if err != nil {
		return fmt.Errorf("профиль: %w", err)
	}

	skills, err := api.ListUserSkills(ctx, id)
	if err != nil {
		return fmt.Errorf("навыки: %w", err)
	}

	categories, err := api.ListCategories(ctx)
	if err != nil {
		fmt.Fprintln(a.errOut(), "предупреждение: категории не загружены:", err)
	}
	idx := directory.NewCategoryIndex(categories)

	out := profileOutput{
		User:         *user,
		Completeness: directory.Completeness(*user, skills),
		Skills:       directory.SkillRows([]directory.Professional{{User: *user, Skills: skills}}, idx),
	}

	if a.asJSON {
		return writeJSON(a.out, out)
	}

	fmt.Fprintf(a.out, "%s <%s>\n", displayName(*user), user.Email)
	fmt.Fprintf(a.out, "Профиль заполнен на %d%%\n\n", out.Completeness)

	t := newTable(a.out, "НАВЫК", "КАТЕГОРИЯ", "СТАЖ", "СТАВКА", "СВОБОДЕН")
	for _, s := range out.Skills {
		t.row(s.SkillName, s.Category, strconv.Itoa(s.Experience), s.Rate, yesNo(s.Available))
	}
	return t.flush()
}
