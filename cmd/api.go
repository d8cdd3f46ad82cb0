package cmd

import (
	"context"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/laisky-blog-api/internal/web"
	blogCtl "github.com/Laisky/laisky-blog-api/internal/web/blog/controller"
	blogDao "github.com/Laisky/laisky-blog-api/internal/web/blog/dao"
	blogSvc "github.com/Laisky/laisky-blog-api/internal/web/blog/service"
	"github.com/Laisky/laisky-blog-api/library/db/mongo"
	"github.com/Laisky/laisky-blog-api/library/log"
)

var apiCMD = &cobra.Command{
	Use:   "api",
	Short: "api",
	Long:  `blog REST API service`,
	PreRun: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if err := initialize(ctx, cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		db, err := mongo.NewDB(ctx, mongo.DialInfo{
			Addr:   gconfig.Shared.GetString("settings.db.blog.addr"),
			DBName: gconfig.Shared.GetString("settings.db.blog.db"),
			User:   gconfig.Shared.GetString("settings.db.blog.user"),
			Pwd:    gconfig.Shared.GetString("settings.db.blog.pwd"),
		})
		if err != nil {
			log.Logger.Panic("connect to blog db", zap.Error(err))
		}
		defer db.Close(ctx) //nolint:errcheck
		log.Logger.Info("connected mongodb")

		dao := blogDao.New(log.Logger.Named("blog_dao"), db)
		svc := blogSvc.New(log.Logger.Named("blog_svc"), dao)
		ctl := blogCtl.New(log.Logger.Named("blog_ctl"), svc)

		web.RunServer(gconfig.Shared.GetString("listen"), ctl)
	},
}

func init() {
	rootCMD.AddCommand(apiCMD)
}
