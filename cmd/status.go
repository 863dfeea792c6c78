package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/emrgen/sitepress/internal/config"
	"github.com/emrgen/sitepress/internal/store"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	var siteID string

	var required = []string{"site-id"}

	command := &cobra.Command{
		Use:     "status",
		Short:   "show pending publish counts for a site",
		Example: "sitepress status -s <site-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			sid, err := uuid.Parse(siteID)
			if err != nil {
				color.Red("invalid site id, expected a valid uuid")
				return
			}

			ctx := context.Background()
			cnf := config.LoadConfig()
			gormStore := store.NewGormStore(config.GetDb(cnf))
			publisher := newPublisher()

			siteCount, err := publisher.SitePublishableCount(ctx, sid)
			if err != nil {
				logrus.Error(err)
				return
			}

			collections, err := gormStore.ListCollections(ctx, sid, false)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Root", "Name", "Pending"})
			table.Append([]string{"pages", siteID, strconv.Itoa(siteCount)})

			for _, collection := range collections {
				cid, err := uuid.Parse(collection.ID)
				if err != nil {
					continue
				}
				count, err := publisher.PublishableCount(ctx, cid)
				if err != nil {
					logrus.Error(err)
					continue
				}
				table.Append([]string{"collection", collection.Name, strconv.Itoa(count)})
			}

			table.Render()
		},
	}

	command.Flags().StringVarP(&siteID, "site-id", "s", "", "site id (required)")

	command.Flags().SortFlags = false

	return command
}
