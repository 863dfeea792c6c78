package cmd

import (
	"os"
	"os/signal"

	"github.com/emrgen/sitepress/internal/cache"
	"github.com/emrgen/sitepress/internal/config"
	"github.com/emrgen/sitepress/internal/job"
	"github.com/emrgen/sitepress/internal/jobs"
	"github.com/emrgen/sitepress/internal/publish"
	"github.com/emrgen/sitepress/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

func gcCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "gc",
		Short: "run the background orphan sweeper",
		Run: func(cmd *cobra.Command, args []string) {
			cnf := config.LoadConfig()
			gormStore := store.NewGormStore(config.GetDb(cnf))
			publisher := publish.NewPublisher(gormStore, cache.NewRedis(cnf.RedisAddr))

			executor := jobs.NewTaskExecutor(nil, []jobs.CronJob{
				job.NewOrphanSweeper(gormStore, publisher),
			})
			executor.Run()

			logrus.Infof("orphan sweeper running, press Ctrl+C to stop")

			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, unix.SIGTERM, unix.SIGINT, unix.SIGTSTP)
			<-sigs

			executor.Stop()
		},
	}

	return command
}
