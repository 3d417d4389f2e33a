package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"content_hub/internal/auth"
	"content_hub/internal/config"
	"content_hub/internal/domain"
	"content_hub/internal/feed"
	"content_hub/internal/forms"
	"content_hub/internal/media"
	"content_hub/internal/mirror"
	"content_hub/internal/scheduler"
	"content_hub/internal/storage/postgres"
)

const defaultPageSize = 10

const usage = `usage: contenthub [-config path] <command> [args]

commands:
  list <entity> [page [size]]    print rows as JSON; with a page, print one
                                 newest-first page plus the total row count
  create <entity> <input.json>   validate a form input and insert it (signs in first)
  update <entity> <id> <patch.json>  apply a partial-field patch
  delete <entity> <id>           delete a row by id
  watch                          mirror all entities and refresh on change events
  upload <type> <file>...        upload files (type: image, document, video)
  bridge                         forward database change events to rabbitmq

entities: news, events, reports, projects, success_stories
`

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger = setupLogger(cfg.LogLevel)

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if err := run(ctx, cfg, logger, args[0], args[1:]); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Error("command failed", "command", args[0], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string, args []string) error {
	switch command {
	case "upload":
		return runUpload(ctx, cfg, logger, args)
	case "bridge":
		return runBridge(ctx, cfg, logger)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	logger.Info("connected to database")

	switch command {
	case "list":
		if len(args) < 1 || len(args) > 3 {
			return fmt.Errorf("usage: list <entity> [page [size]]")
		}
		return runList(ctx, db, logger, args[0], args[1:])
	case "create":
		if len(args) != 2 {
			return fmt.Errorf("usage: create <entity> <input.json>")
		}
		return runCreate(ctx, cfg, db, logger, args[0], args[1])
	case "update":
		if len(args) != 3 {
			return fmt.Errorf("usage: update <entity> <id> <patch.json>")
		}
		return runUpdate(ctx, db, logger, args[0], args[1], args[2])
	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: delete <entity> <id>")
		}
		return runDelete(ctx, db, logger, args[0], args[1])
	case "watch":
		return runWatch(ctx, cfg, db, logger)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func runList(ctx context.Context, db *sqlx.DB, logger *slog.Logger, entity string, pageArgs []string) error {
	page, size, err := parsePageArgs(pageArgs)
	if err != nil {
		return err
	}

	switch entity {
	case "news":
		return printList(ctx, mirror.New[*domain.News](postgres.NewNewsStore(db), nil, logger), page, size)
	case "events":
		return printList(ctx, mirror.New[*domain.Event](postgres.NewEventStore(db), nil, logger), page, size)
	case "reports":
		return printList(ctx, mirror.New[*domain.Report](postgres.NewReportStore(db), nil, logger), page, size)
	case "projects":
		return printList(ctx, mirror.New[*domain.Project](postgres.NewProjectStore(db), nil, logger), page, size)
	case "success_stories":
		return printList(ctx, mirror.New[*domain.SuccessStory](postgres.NewSuccessStoryStore(db), nil, logger), page, size)
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
}

// parsePageArgs reads the optional [page [size]] arguments. Page 0 means the
// whole table in its public ordering.
func parsePageArgs(args []string) (page, size int, err error) {
	size = defaultPageSize
	if len(args) >= 1 {
		if page, err = strconv.Atoi(args[0]); err != nil || page < 1 {
			return 0, 0, fmt.Errorf("invalid page %q", args[0])
		}
	}
	if len(args) == 2 {
		if size, err = strconv.Atoi(args[1]); err != nil || size < 1 {
			return 0, 0, fmt.Errorf("invalid page size %q", args[1])
		}
	}
	return page, size, nil
}

func printList[T domain.Record](ctx context.Context, m *mirror.Mirror[T], page, size int) error {
	if page == 0 {
		if err := m.Refresh(ctx); err != nil {
			return err
		}
		return printJSON(m.Items())
	}

	result, err := m.FetchPage(ctx, page, size)
	if err != nil {
		return err
	}
	return printJSON(struct {
		Items []T `json:"items"`
		Total int `json:"total"`
		Page  int `json:"page"`
		Size  int `json:"size"`
	}{result.Items, result.Total, page, size})
}

func runCreate(ctx context.Context, cfg *config.Config, db *sqlx.DB, logger *slog.Logger, entity, inputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}

	sess, err := signIn(ctx, cfg, logger)
	if err != nil {
		return err
	}

	switch entity {
	case "news":
		var in forms.NewsInput
		if err := json.Unmarshal(data, &in); err != nil {
			return fmt.Errorf("parse input: %w", err)
		}
		rec, err := in.Record()
		if err != nil {
			return err
		}
		return printResult(mirror.New[*domain.News](postgres.NewNewsStore(db), nil, logger).Create(ctx, rec, sess))
	case "events":
		var in forms.EventInput
		if err := json.Unmarshal(data, &in); err != nil {
			return fmt.Errorf("parse input: %w", err)
		}
		rec, err := in.Record()
		if err != nil {
			return err
		}
		return printResult(mirror.New[*domain.Event](postgres.NewEventStore(db), nil, logger).Create(ctx, rec, sess))
	case "reports":
		var in forms.ReportInput
		if err := json.Unmarshal(data, &in); err != nil {
			return fmt.Errorf("parse input: %w", err)
		}
		rec, err := in.Record()
		if err != nil {
			return err
		}
		return printResult(mirror.New[*domain.Report](postgres.NewReportStore(db), nil, logger).Create(ctx, rec, sess))
	case "projects":
		var in forms.ProjectInput
		if err := json.Unmarshal(data, &in); err != nil {
			return fmt.Errorf("parse input: %w", err)
		}
		rec, err := in.Record()
		if err != nil {
			return err
		}
		return printResult(mirror.New[*domain.Project](postgres.NewProjectStore(db), nil, logger).Create(ctx, rec, sess))
	case "success_stories":
		var in forms.SuccessStoryInput
		if err := json.Unmarshal(data, &in); err != nil {
			return fmt.Errorf("parse input: %w", err)
		}
		rec, err := in.Record()
		if err != nil {
			return err
		}
		return printResult(mirror.New[*domain.SuccessStory](postgres.NewSuccessStoryStore(db), nil, logger).Create(ctx, rec, sess))
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
}

func runUpdate(ctx context.Context, db *sqlx.DB, logger *slog.Logger, entity, id, patchPath string) error {
	data, err := os.ReadFile(patchPath)
	if err != nil {
		return fmt.Errorf("read patch file: %w", err)
	}
	var patch map[string]any
	if err := json.Unmarshal(data, &patch); err != nil {
		return fmt.Errorf("parse patch: %w", err)
	}

	switch entity {
	case "news":
		return printResult(mirror.New[*domain.News](postgres.NewNewsStore(db), nil, logger).Update(ctx, id, patch))
	case "events":
		return printResult(mirror.New[*domain.Event](postgres.NewEventStore(db), nil, logger).Update(ctx, id, patch))
	case "reports":
		return printResult(mirror.New[*domain.Report](postgres.NewReportStore(db), nil, logger).Update(ctx, id, patch))
	case "projects":
		return printResult(mirror.New[*domain.Project](postgres.NewProjectStore(db), nil, logger).Update(ctx, id, patch))
	case "success_stories":
		return printResult(mirror.New[*domain.SuccessStory](postgres.NewSuccessStoryStore(db), nil, logger).Update(ctx, id, patch))
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
}

func runDelete(ctx context.Context, db *sqlx.DB, logger *slog.Logger, entity, id string) error {
	switch entity {
	case "news":
		return printResult(mirror.New[*domain.News](postgres.NewNewsStore(db), nil, logger).Delete(ctx, id))
	case "events":
		return printResult(mirror.New[*domain.Event](postgres.NewEventStore(db), nil, logger).Delete(ctx, id))
	case "reports":
		return printResult(mirror.New[*domain.Report](postgres.NewReportStore(db), nil, logger).Delete(ctx, id))
	case "projects":
		return printResult(mirror.New[*domain.Project](postgres.NewProjectStore(db), nil, logger).Delete(ctx, id))
	case "success_stories":
		return printResult(mirror.New[*domain.SuccessStory](postgres.NewSuccessStoryStore(db), nil, logger).Delete(ctx, id))
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
}

// runWatch mirrors every table, subscribes each mirror to the change feed and
// keeps the snapshots fresh with a periodic full refresh until the context is
// cancelled.
func runWatch(ctx context.Context, cfg *config.Config, db *sqlx.DB, logger *slog.Logger) error {
	fd, closeFeed, err := newFeed(cfg, logger)
	if err != nil {
		return err
	}
	defer closeFeed()

	news := mirror.New[*domain.News](postgres.NewNewsStore(db), fd, logger)
	events := mirror.New[*domain.Event](postgres.NewEventStore(db), fd, logger)
	reports := mirror.New[*domain.Report](postgres.NewReportStore(db), fd, logger)
	projects := mirror.New[*domain.Project](postgres.NewProjectStore(db), fd, logger)
	stories := mirror.New[*domain.SuccessStory](postgres.NewSuccessStoryStore(db), fd, logger)

	watchers := []interface {
		Watch(ctx context.Context) (func(), error)
	}{news, events, reports, projects, stories}

	for _, w := range watchers {
		stop, err := w.Watch(ctx)
		if err != nil {
			return err
		}
		defer stop()
	}

	sched := scheduler.NewScheduler([]scheduler.Refresher{
		news, events, reports, projects, stories,
	}, cfg.Refresh.Interval, logger)

	logger.Info("watching content tables",
		"transport", cfg.Feed.Transport,
		"refresh_interval", cfg.Refresh.Interval,
	)

	return sched.Start(ctx)
}

func runUpload(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: upload <type> <file>...")
	}

	fileType := domain.FileType(args[0])
	if _, ok := domain.MaxFileSize[fileType]; !ok {
		return fmt.Errorf("unknown file type %q", args[0])
	}

	var files []media.File
	var closers []*os.File
	defer func() {
		for _, f := range closers {
			f.Close()
		}
	}()

	for _, path := range args[1:] {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open file: %w", err)
		}
		closers = append(closers, f)

		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stat file: %w", err)
		}

		mimeType := mime.TypeByExtension(filepath.Ext(path))
		if i := strings.IndexByte(mimeType, ';'); i >= 0 {
			mimeType = mimeType[:i]
		}

		files = append(files, media.File{
			Name:    filepath.Base(path),
			Type:    fileType,
			MIME:    mimeType,
			Size:    info.Size(),
			Content: f,
		})
	}

	uploader := media.NewUploader(cfg.Cloudinary, logger)
	urls, err := uploader.UploadAll(ctx, files)
	for i, url := range urls {
		if url != "" {
			fmt.Printf("%s\t%s\n", files[i].Name, url)
		}
	}
	return err
}

// runBridge republishes database change notifications on the message broker
// so subscribers without database credentials can follow the feed.
func runBridge(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	pgFeed, err := feed.NewPGListener(cfg.Database.DSN(), cfg.Feed.Channel, logger)
	if err != nil {
		return err
	}
	defer pgFeed.Close()

	rmq, err := feed.NewRabbitMQ(feed.RabbitMQConfig{
		URL:      cfg.Feed.RabbitMQ.URL,
		Exchange: cfg.Feed.RabbitMQ.Exchange,
	}, logger)
	if err != nil {
		return err
	}
	defer rmq.Close()

	merged := make(chan domain.Change)
	for _, table := range postgres.Tables() {
		changes, release, err := pgFeed.Subscribe(table)
		if err != nil {
			return err
		}
		defer release()

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case change, ok := <-changes:
					if !ok {
						return
					}
					select {
					case merged <- change:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	logger.Info("bridging change feed to rabbitmq", "exchange", cfg.Feed.RabbitMQ.Exchange)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case change := <-merged:
			if change.Action == domain.ActionResync {
				continue
			}
			if err := rmq.Publish(ctx, change); err != nil {
				logger.Error("failed to publish change", "table", change.Table, "error", err)
			}
		}
	}
}

func newFeed(cfg *config.Config, logger *slog.Logger) (mirror.Feed, func(), error) {
	switch cfg.Feed.Transport {
	case config.FeedTransportRabbitMQ:
		rmq, err := feed.NewRabbitMQ(feed.RabbitMQConfig{
			URL:      cfg.Feed.RabbitMQ.URL,
			Exchange: cfg.Feed.RabbitMQ.Exchange,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return rmq, func() { rmq.Close() }, nil
	default:
		pg, err := feed.NewPGListener(cfg.Database.DSN(), cfg.Feed.Channel, logger)
		if err != nil {
			return nil, nil, err
		}
		return pg, func() { pg.Close() }, nil
	}
}

func signIn(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*auth.Session, error) {
	email := os.Getenv("CONTENT_HUB_EMAIL")
	password := os.Getenv("CONTENT_HUB_PASSWORD")
	if email == "" || password == "" {
		return nil, fmt.Errorf("CONTENT_HUB_EMAIL and CONTENT_HUB_PASSWORD must be set")
	}

	client := auth.NewClient(cfg.Auth, logger)
	sess, err := client.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	logger.Info("signed in", "user_id", sess.UserID)
	return sess, nil
}

func printResult[T domain.Record](res mirror.Result[T]) error {
	if !res.Success {
		return errors.New(res.Error)
	}
	return printJSON(res)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
