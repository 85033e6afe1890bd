package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	clientrepo "github.com/heartmarshall/coaching-backend/internal/adapter/postgres/client"
	"github.com/heartmarshall/coaching-backend/internal/adapter/postgres/event"
	"github.com/heartmarshall/coaching-backend/internal/adapter/postgres/generationlog"
	"github.com/heartmarshall/coaching-backend/internal/domain"
	"github.com/heartmarshall/coaching-backend/internal/metrics"
	"github.com/heartmarshall/coaching-backend/internal/service/timeline"
)

var (
	timelineClient string
	timelineArea   string
	timelineLimit  int
	timelineJSON   bool
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Print the newest timeline events of a client",
	RunE: func(cmd *cobra.Command, _ []string) error {
		clientID, err := uuid.Parse(timelineClient)
		if err != nil {
			return fmt.Errorf("invalid --client: %w", err)
		}
		input := timeline.ListInput{ClientID: clientID, Limit: timelineLimit}
		if timelineArea != "" {
			area := domain.Area(timelineArea)
			input.Area = &area
		}

		ctx := cmd.Context()
		pool, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		svc := timeline.NewService(logger, clientrepo.New(pool), event.New(pool), generationlog.New(pool), (*metrics.Metrics)(nil))

		events, err := svc.List(operatorCtx(ctx), input)
		if err != nil {
			return err
		}

		if timelineJSON {
			return writeJSON(cmd.OutOrStdout(), events)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CREATED AT\tAREA\tSOURCE\tEVENT\tTITLE")
		for _, e := range events {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Area, e.Source, e.EventType, e.Title)
		}
		return tw.Flush()
	},
}

func init() {
	timelineCmd.Flags().StringVar(&timelineClient, "client", "", "client UUID")
	timelineCmd.Flags().StringVar(&timelineArea, "area", "", "only events of this area, e.g. NUTRITION")
	timelineCmd.Flags().IntVar(&timelineLimit, "limit", 50, "maximum number of events (1..200)")
	timelineCmd.Flags().BoolVar(&timelineJSON, "json", false, "print JSON instead of a table")
	_ = timelineCmd.MarkFlagRequired("client")
}
