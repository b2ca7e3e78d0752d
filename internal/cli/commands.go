package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tropicaldog17/orgledger/internal/models"
)

// ─── summary ────────────────────────────────────────────────────────────────

func newSummaryCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show lifetime, month and year totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary := st.ledger.Summary(cmd.Context())
			out := cmd.OutOrStdout()
			if st.asJSON {
				return writeJSON(out, summary)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "\tIncome\tExpense\tNet\n")
			fmt.Fprintf(tw, "Month from %s\t%s\t%s\t%s\n", summary.MonthStart,
				summary.CurrentMonthIncome, summary.CurrentMonthExpense, summary.CurrentMonthNet)
			fmt.Fprintf(tw, "Year from %s\t%s\t%s\t%s\n", summary.YearStart,
				summary.CurrentYearIncome, summary.CurrentYearExpense, summary.CurrentYearNet)
			fmt.Fprintf(tw, "Lifetime\t%s\t%s\t%s\n",
				summary.TotalIncome, summary.TotalExpense, summary.Balance)
			fmt.Fprintf(tw, "Transactions\t%d\t\t\n", summary.TransactionCount)
			return tw.Flush()
		},
	}
}

// ─── list ───────────────────────────────────────────────────────────────────

func newListCmd(st *state) *cobra.Command {
	var (
		from, to, minAmount, maxAmount string
		filter                         models.TransactionFilter
		sortBy                         string
		desc                           bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions matching a filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if filter.DateFrom, err = optionalDate(from, st); err != nil {
				return err
			}
			if filter.DateTo, err = optionalDate(to, st); err != nil {
				return err
			}
			if filter.AmountFrom, err = optionalAmount("min-amount", minAmount); err != nil {
				return err
			}
			if filter.AmountTo, err = optionalAmount("max-amount", maxAmount); err != nil {
				return err
			}
			filter.SortBy = models.SortField(sortBy)
			if filter.SortBy != "" && !filter.SortBy.Valid() {
				return fmt.Errorf("unknown sort field %q", sortBy)
			}
			if desc {
				filter.SortDir = models.SortDesc
			}

			txs, err := st.ledger.ListTransactions(cmd.Context(), &filter)
			if err != nil {
				return err
			}
			if st.asJSON {
				return writeJSON(cmd.OutOrStdout(), txs)
			}
			return printTransactions(cmd.OutOrStdout(), txs)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&from, "from", "", "Earliest date, inclusive (YYYY-MM-DD)")
	flags.StringVar(&to, "to", "", "Latest date, inclusive (YYYY-MM-DD)")
	flags.StringVar(&filter.Kind, "kind", models.FilterAll, "income, expense or ALL")
	flags.StringVar(&filter.Category, "category", models.FilterAll, "Category or ALL")
	flags.StringVar(&filter.Status, "status", models.FilterAll, "pending, confirmed, cancelled or ALL")
	flags.StringVar(&minAmount, "min-amount", "", "Minimum amount, inclusive")
	flags.StringVar(&maxAmount, "max-amount", "", "Maximum amount, inclusive")
	flags.StringVarP(&filter.SearchText, "search", "q", "", "Text searched in notes, case-insensitive")
	flags.StringVar(&sortBy, "sort", "", "Sort field (date, amount, created_at, updated_at, category, status, kind)")
	flags.BoolVar(&desc, "desc", false, "Sort descending")
	flags.IntVar(&filter.Limit, "limit", 0, "Maximum number of rows")
	flags.IntVar(&filter.Offset, "offset", 0, "Rows to skip")
	return cmd
}

func printTransactions(w io.Writer, txs []models.Transaction) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tKIND\tCATEGORY\tAMOUNT\tSTATUS\tNOTE")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Date.Format(models.DateLayout), tx.Kind, tx.Category,
			tx.Amount.StringFixed(2), tx.Status, tx.NoteText())
	}
	return tw.Flush()
}

// ─── add ────────────────────────────────────────────────────────────────────

func newAddCmd(st *state) *cobra.Command {
	var kind, category, amount, date, note, status string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new income or expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := optionalAmount("amount", amount)
			if err != nil {
				return err
			}
			input := models.TransactionInput{
				Kind:     models.Kind(kind),
				Category: models.Category(category),
				Amount:   value,
				Status:   models.Status(status),
			}
			if date == "" {
				input.Date = models.NormalizeDate(time.Now().In(st.loc), st.loc)
			} else if input.Date, err = models.ParseDate(date, st.loc); err != nil {
				return err
			}
			if note != "" {
				input.Note = &note
			}

			tx, err := st.ledger.AddTransaction(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printResult(cmd, st, tx)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&kind, "kind", "", "income or expense")
	flags.StringVar(&category, "category", string(models.CategoryOther), "Category")
	flags.StringVar(&amount, "amount", "", "Amount in VND")
	flags.StringVar(&date, "date", "", "Date (YYYY-MM-DD), today when omitted")
	flags.StringVar(&note, "note", "", "Free text note")
	flags.StringVar(&status, "status", string(models.StatusPending), "pending, confirmed or cancelled")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

// ─── update ─────────────────────────────────────────────────────────────────

func newUpdateCmd(st *state) *cobra.Command {
	var kind, category, amount, date, note, status string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a transaction",
		Long:  `Change the given fields of a transaction. Omitted flags are left as they are; --note "" clears the note.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch models.TransactionPatch
			flags := cmd.Flags()
			if flags.Changed("kind") {
				k := models.Kind(kind)
				patch.Kind = &k
			}
			if flags.Changed("category") {
				c := models.Category(category)
				patch.Category = &c
			}
			if flags.Changed("amount") {
				value, err := optionalAmount("amount", amount)
				if err != nil {
					return err
				}
				patch.Amount = value
			}
			if flags.Changed("date") {
				d, err := models.ParseDate(date, st.loc)
				if err != nil {
					return err
				}
				patch.Date = &d
			}
			if flags.Changed("note") {
				patch.Note = &note
			}
			if flags.Changed("status") {
				s := models.Status(status)
				patch.Status = &s
			}

			tx, err := st.ledger.UpdateTransaction(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return printResult(cmd, st, tx)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&kind, "kind", "", "income or expense")
	flags.StringVar(&category, "category", "", "Category")
	flags.StringVar(&amount, "amount", "", "Amount in VND")
	flags.StringVar(&date, "date", "", "Date (YYYY-MM-DD)")
	flags.StringVar(&note, "note", "", "Free text note")
	flags.StringVar(&status, "status", "", "pending, confirmed or cancelled")
	return cmd
}

// ─── delete ─────────────────────────────────────────────────────────────────

func newDeleteCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := st.ledger.DeleteTransaction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if st.asJSON {
				return writeJSON(cmd.OutOrStdout(), tx)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", tx.ID)
			return nil
		},
	}
}

func printResult(cmd *cobra.Command, st *state, tx models.Transaction) error {
	if st.asJSON {
		return writeJSON(cmd.OutOrStdout(), tx)
	}
	return printTransactions(cmd.OutOrStdout(), []models.Transaction{tx})
}

func optionalDate(s string, st *state) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := models.ParseDate(s, st.loc)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func optionalAmount(flag, s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("--%s: %q is not a number", flag, s)
	}
	return &d, nil
}
