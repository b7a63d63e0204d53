package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ignatzorin/skill-connector/internal/directory"
	"github.com/ignatzorin/skill-connector/internal/models"
)

// professionalRow — строка вывода browse.
type professionalRow struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Skills     []string  `json:"skills"`
	Experience int       `json:"experience_years"`
	Rate       string    `json:"rate"`
	Available  bool      `json:"is_available"`
}

func newBrowseCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "browse [query]",
		Short: "Поиск специалистов по тексту и категории",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return runBrowse(cmd.Context(), a, directory.Query{Text: query, Category: category})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", directory.CategoryAll, "точное название категории или all")

	return cmd
}

func runBrowse(ctx context.Context, a *app, q directory.Query) error {
	api := a.client()

	// Без категорий навыки покажутся с "Unknown", это не повод падать.
	categories, err := api.ListCategories(ctx)
	if err != nil {
		fmt.Fprintln(a.errOut(), "предупреждение: категории не загружены:", err)
	}
	idx := directory.NewCategoryIndex(categories)

	result, err := directory.Aggregate(ctx, api, directory.Options{
		FanoutLimit: a.fanoutLimit,
		Categories:  idx,
	})
	if err != nil {
		return fmt.Errorf("каталог: %w", err)
	}
	if result.Partial() {
		fmt.Fprintf(a.errOut(), "предупреждение: навыки %d специалистов не загрузились\n", len(result.Failures))
	}

	matched := directory.Filter(result.Professionals, q)
	rows := make([]professionalRow, 0, len(matched))
	for _, p := range matched {
		rows = append(rows, newProfessionalRow(p))
	}

	if a.asJSON {
		return writeJSON(a.out, rows)
	}

	t := newTable(a.out, "ID", "ИМЯ", "НАВЫКИ", "СТАЖ", "СТАВКА", "СВОБОДЕН")
	for _, r := range rows {
		t.row(r.ID.String(), r.Name, strings.Join(r.Skills, ", "), strconv.Itoa(r.Experience), r.Rate, yesNo(r.Available))
	}
	return t.flush()
}

func newProfessionalRow(p directory.Professional) professionalRow {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.SkillName)
	}
	return professionalRow{
		ID:         p.User.ID,
		Name:       displayName(p.User),
		Email:      p.User.Email,
		Skills:     names,
		Experience: directory.MaxExperience(p.Skills),
		Rate:       directory.RateLabel(directory.AverageRate(p.Skills)),
		Available:  directory.Available(p.Skills),
	}
}

func displayName(u models.User) string {
	if strings.TrimSpace(u.FullName) != "" {
		return u.FullName
	}
	return u.Email
}

func yesNo(v bool) string {
	if v {
		return "да"
	}
	return "нет"
}
