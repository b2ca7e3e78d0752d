package cli

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tropicaldog17/orgledger/internal/models"
	"github.com/tropicaldog17/orgledger/internal/services"
)

// ─── report ─────────────────────────────────────────────────────────────────

func newReportCmd(st *state) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Period reports (cash flow, spending)",
	}
	cmd.PersistentFlags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD), 30 days before --to when omitted")
	cmd.PersistentFlags().StringVar(&to, "to", "", "End date (YYYY-MM-DD), today when omitted")

	period := func() (models.Period, error) {
		end := models.NormalizeDate(time.Now().In(st.loc), st.loc)
		if d, err := optionalDate(to, st); err != nil {
			return models.Period{}, fmt.Errorf("--to: %w", err)
		} else if d != nil {
			end = *d
		}
		start := end.AddDate(0, 0, -30)
		if d, err := optionalDate(from, st); err != nil {
			return models.Period{}, fmt.Errorf("--from: %w", err)
		} else if d != nil {
			start = *d
		}
		p := models.Period{StartDate: start, EndDate: end}
		return p, p.Validate()
	}

	var status string
	cashflow := &cobra.Command{
		Use:   "cashflow",
		Short: "Income and expense by category and month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := period()
			if err != nil {
				return err
			}
			report, err := services.NewReportingService(st.ledger).GetCashFlow(cmd.Context(), p, status)
			if err != nil {
				return err
			}
			if st.asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			return printCashFlow(cmd.OutOrStdout(), report)
		},
	}
	cashflow.Flags().StringVar(&status, "status", "", "pending, confirmed or cancelled (all when omitted)")

	spending := &cobra.Command{
		Use:   "spending",
		Short: "Expenses by category with the largest ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := period()
			if err != nil {
				return err
			}
			report, err := services.NewReportingService(st.ledger).GetSpending(cmd.Context(), p)
			if err != nil {
				return err
			}
			if st.asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			return printSpending(cmd.OutOrStdout(), report)
		},
	}

	cmd.AddCommand(cashflow, spending)
	return cmd
}

func printCashFlow(w io.Writer, r *models.CashFlowReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Period\t%s .. %s\n\n", r.Period.StartDate.Format(models.DateLayout), r.Period.EndDate.Format(models.DateLayout))
	fmt.Fprintf(tw, "MONTH\tINCOME\tEXPENSE\tNET\tCOUNT\n")
	for _, m := range r.ByMonth {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", m.Month,
			m.Income.StringFixed(2), m.Expense.StringFixed(2), m.Net.StringFixed(2), m.Count)
	}
	fmt.Fprintf(tw, "Total\t%s\t%s\t%s\t%d\n\n",
		r.TotalIncome.StringFixed(2), r.TotalExpense.StringFixed(2), r.Net.StringFixed(2), r.Count)

	fmt.Fprintf(tw, "KIND\tCATEGORY\tAMOUNT\tSHARE\tCOUNT\n")
	writeCategories(tw, models.KindIncome, r.IncomeByCategory)
	writeCategories(tw, models.KindExpense, r.ExpenseByCategory)
	return tw.Flush()
}

func printSpending(w io.Writer, r *models.SpendingReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Period\t%s .. %s\n", r.Period.StartDate.Format(models.DateLayout), r.Period.EndDate.Format(models.DateLayout))
	fmt.Fprintf(tw, "Total\t%s\n\n", r.Total.StringFixed(2))

	fmt.Fprintf(tw, "KIND\tCATEGORY\tAMOUNT\tSHARE\tCOUNT\n")
	writeCategories(tw, models.KindExpense, r.ByCategory)

	if len(r.TopExpenses) > 0 {
		fmt.Fprintf(tw, "\nDATE\tCATEGORY\tAMOUNT\tSTATUS\tNOTE\n")
		for _, tx := range r.TopExpenses {
			note := ""
			if tx.Note != nil {
				note = *tx.Note
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", tx.Date, tx.Category, tx.Amount.StringFixed(2), tx.Status, note)
		}
	}
	return tw.Flush()
}

// writeCategories prints the largest categories first.
func writeCategories(w io.Writer, kind models.Kind, byCategory map[models.Category]*models.CategoryTotal) {
	categories := make([]models.Category, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	slices.SortFunc(categories, func(a, b models.Category) int {
		if c := byCategory[b].Amount.Cmp(byCategory[a].Amount); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	for _, c := range categories {
		ct := byCategory[c]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s%%\t%d\n", kind, c, ct.Amount.StringFixed(2), ct.Percentage.StringFixed(2), ct.Count)
	}
}
