package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/coaching-backend/internal/adapter/postgres"
	clientrepo "github.com/heartmarshall/coaching-backend/internal/adapter/postgres/client"
	"github.com/heartmarshall/coaching-backend/internal/adapter/postgres/event"
	"github.com/heartmarshall/coaching-backend/internal/adapter/postgres/generationlog"
	programrepo "github.com/heartmarshall/coaching-backend/internal/adapter/postgres/program"
	"github.com/heartmarshall/coaching-backend/internal/domain"
	"github.com/heartmarshall/coaching-backend/internal/metrics"
	"github.com/heartmarshall/coaching-backend/internal/service/artifact"
)

var (
	historyClient string
	historyKind   string
	historyJSON   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the version history of one client artifact",
	RunE: func(cmd *cobra.Command, _ []string) error {
		clientID, err := uuid.Parse(historyClient)
		if err != nil {
			return fmt.Errorf("invalid --client: %w", err)
		}
		kind := domain.ArtifactKind(historyKind)
		if !kind.IsValid() {
			return fmt.Errorf("invalid --kind %q", historyKind)
		}

		ctx := cmd.Context()
		pool, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		svc := artifact.NewService(logger, pool, postgres.NewTxManager(pool),
			clientrepo.New(pool), programrepo.New(pool), generationlog.New(pool), event.New(pool),
			nil, (*metrics.Metrics)(nil))

		versions, err := svc.GetHistory(operatorCtx(ctx), clientID, kind)
		if err != nil {
			return err
		}

		if historyJSON {
			return writeJSON(cmd.OutOrStdout(), versions)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SEQ\tSOURCE\tGENERATION LOG\tCREATED AT\tRATIONALE")
		for _, v := range versions {
			logID := "-"
			if v.GenerationLogID != nil {
				logID = v.GenerationLogID.String()
			}
			rationale := "-"
			if v.Rationale != nil {
				rationale = *v.Rationale
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", v.Seq, v.Source, logID, v.CreatedAt.Format("2006-01-02 15:04:05"), rationale)
		}
		return tw.Flush()
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyClient, "client", "", "client UUID")
	historyCmd.Flags().StringVar(&historyKind, "kind", "", "artifact kind, e.g. NUTRITION_TARGETS")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print JSON instead of a table")
	_ = historyCmd.MarkFlagRequired("client")
	_ = historyCmd.MarkFlagRequired("kind")
}
