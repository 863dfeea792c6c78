package cmd

import (
	"context"
	"fmt"

	"github.com/emrgen/sitepress/internal/cache"
	"github.com/emrgen/sitepress/internal/config"
	"github.com/emrgen/sitepress/internal/publish"
	"github.com/emrgen/sitepress/internal/store"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "publish commands",
}

func init() {
	publishCmd.AddCommand(publishCollectionCmd())
	publishCmd.AddCommand(publishSiteCmd())
}

func newPublisher() *publish.Publisher {
	cnf := config.LoadConfig()
	db := config.GetDb(cnf)

	return publish.NewPublisher(store.NewGormStore(db), cache.NewRedis(cnf.RedisAddr))
}

func publishCollectionCmd() *cobra.Command {
	var collectionID string
	var itemIDs []string

	var required = []string{"collection-id"}

	command := &cobra.Command{
		Use:     "collection",
		Short:   "publish a collection",
		Example: "sitepress publish collection -c <collection-id> -i <item-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			cid, err := uuid.Parse(collectionID)
			if err != nil {
				color.Red("invalid collection id, expected a valid uuid")
				return
			}

			var opts *publish.Options
			if len(itemIDs) > 0 {
				opts = &publish.Options{}
				for _, id := range itemIDs {
					itemID, err := uuid.Parse(id)
					if err != nil {
						color.Red("invalid item id %q, expected a valid uuid", id)
						return
					}
					opts.ItemIDs = append(opts.ItemIDs, itemID)
				}
			}

			result, err := newPublisher().PublishCollection(context.Background(), cid, opts)
			if err != nil {
				logrus.Error(err)
				return
			}

			printResult(result)
		},
	}

	command.Flags().StringVarP(&collectionID, "collection-id", "c", "", "collection id (required)")
	command.Flags().StringArrayVarP(&itemIDs, "item-id", "i", nil, "publish only the given items")

	command.Flags().SortFlags = false

	return command
}

func publishSiteCmd() *cobra.Command {
	var siteID string

	var required = []string{"site-id"}

	command := &cobra.Command{
		Use:     "site",
		Short:   "publish the page tree of a site",
		Example: "sitepress publish site -s <site-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			sid, err := uuid.Parse(siteID)
			if err != nil {
				color.Red("invalid site id, expected a valid uuid")
				return
			}

			result, err := newPublisher().PublishSite(context.Background(), sid)
			if err != nil {
				logrus.Error(err)
				return
			}

			printResult(result)
		},
	}

	command.Flags().StringVarP(&siteID, "site-id", "s", "", "site id (required)")

	command.Flags().SortFlags = false

	return command
}

func printResult(result *publish.Result) {
	if result.Success {
		color.Green("published %s", result.RootID)
	} else {
		color.Red("publishing %s failed", result.RootID)
	}

	for kind, counts := range result.Counts {
		fmt.Printf("  %-12s created: %d, updated: %d, unchanged: %d\n",
			kind, counts.Created, counts.Updated, counts.Unchanged)
	}
	for _, msg := range result.Errors {
		color.Red("  %s", msg)
	}
}
