package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/listenupapp/linkstash/internal/auth"
	"github.com/listenupapp/linkstash/internal/di/providers"
	domainerrors "github.com/listenupapp/linkstash/internal/errors"
	"github.com/listenupapp/linkstash/internal/service"
	"github.com/listenupapp/linkstash/internal/store"
	"github.com/listenupapp/linkstash/internal/validation"
)

// seedFile is the YAML layout read by linkstash seed.
//
//	user: alice
//	collections:
//	  - name: Go
//	    children:
//	      - name: Concurrency
//	bookmarks:
//	  - url: go.dev/blog
//	    collection: Concurrency
//	    tags: [reading]
//	todos:
//	  - title: Write the post
type seedFile struct {
	User        string           `yaml:"user"`
	Collections []seedCollection `yaml:"collections"`
	Bookmarks   []seedBookmark   `yaml:"bookmarks"`
	Todos       []seedTodo       `yaml:"todos"`
}

type seedCollection struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Color       string           `yaml:"color"`
	Icon        string           `yaml:"icon"`
	Children    []seedCollection `yaml:"children"`
}

type seedBookmark struct {
	URL         string   `yaml:"url"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Collection  string   `yaml:"collection"`
	Tags        []string `yaml:"tags"`
}

type seedTodo struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// seedSummary counts what a seed run created.
type seedSummary struct {
	Collections int
	Tags        int
	Bookmarks   int
	Skipped     int
	Todos       int
}

func newSeedCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "seed FILE",
		Short: "Load collections, bookmarks and todos from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := readSeedFile(args[0])
			if err != nil {
				return err
			}
			if user != "" {
				sf.User = user
			}
			if sf.User == "" {
				return fmt.Errorf("%s: no user given (set user: or --user)", args[0])
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := cliLogger(cfg)

			st, err := providers.OpenStore(cfg.Store, log)
			if err != nil {
				return err
			}
			defer st.Close()

			summary, err := runSeed(cmd.Context(), st, sf, log.Logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"seeded %s: %d collections, %d tags, %d bookmarks (%d already present), %d todos\n",
				sf.User, summary.Collections, summary.Tags, summary.Bookmarks, summary.Skipped, summary.Todos)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Owner of the seeded records (overrides the file)")

	return cmd
}

func readSeedFile(path string) (*seedFile, error) {
	//#nosec G304 -- Seed file path is supplied by the operator
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeSeed(f)
}

func decodeSeed(r io.Reader) (*seedFile, error) {
	var sf seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil && !domainerrors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &sf, nil
}

// seeder creates seed records through the services so every rule the API
// enforces also holds for seeded data.
type seeder struct {
	collections *service.CollectionService
	tags        *service.TagService
	bookmarks   *service.BookmarkService
	todos       *service.TodoService

	collectionIDs map[string]string
	tagIDs        map[string]string
	summary       seedSummary
}

func runSeed(ctx context.Context, st store.Store, sf *seedFile, log *slog.Logger) (seedSummary, error) {
	v := validation.New()
	s := &seeder{
		collections:   service.NewCollectionService(st, v, log),
		tags:          service.NewTagService(st, v, log),
		bookmarks:     service.NewBookmarkService(st, v, log),
		todos:         service.NewTodoService(st, v, log),
		collectionIDs: make(map[string]string),
		tagIDs:        make(map[string]string),
	}

	ctx = auth.WithSubject(ctx, sf.User)

	if err := s.createCollections(ctx, sf.Collections, ""); err != nil {
		return s.summary, err
	}

	for _, b := range sf.Bookmarks {
		if err := s.createBookmark(ctx, b); err != nil {
			return s.summary, err
		}
	}

	for _, t := range sf.Todos {
		if _, err := s.todos.Create(ctx, service.CreateTodoRequest{Title: t.Title, Description: t.Description}); err != nil {
			return s.summary, fmt.Errorf("todo %q: %w", t.Title, err)
		}
		s.summary.Todos++
	}

	return s.summary, nil
}

func (s *seeder) createCollections(ctx context.Context, cols []seedCollection, parentID string) error {
	for _, c := range cols {
		created, err := s.collections.Create(ctx, service.CreateCollectionRequest{
			Name:        c.Name,
			Description: c.Description,
			Color:       c.Color,
			Icon:        c.Icon,
			ParentID:    parentID,
		})
		if err != nil {
			return fmt.Errorf("collection %q: %w", c.Name, err)
		}
		s.collectionIDs[c.Name] = created.ID
		s.summary.Collections++

		if err := s.createCollections(ctx, c.Children, created.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) createBookmark(ctx context.Context, b seedBookmark) error {
	req := service.CreateBookmarkRequest{
		URL:         b.URL,
		Title:       b.Title,
		Description: b.Description,
	}

	if b.Collection != "" {
		id, ok := s.collectionIDs[b.Collection]
		if !ok {
			return fmt.Errorf("bookmark %q: unknown collection %q", b.URL, b.Collection)
		}
		req.CollectionID = id
	}

	for _, name := range b.Tags {
		id, err := s.tagID(ctx, name)
		if err != nil {
			return fmt.Errorf("bookmark %q: %w", b.URL, err)
		}
		req.TagIDs = append(req.TagIDs, id)
	}

	if _, err := s.bookmarks.Create(ctx, req); err != nil {
		if domainerrors.Is(err, domainerrors.ErrAlreadyExists) {
			s.summary.Skipped++
			return nil
		}
		return fmt.Errorf("bookmark %q: %w", b.URL, err)
	}
	s.summary.Bookmarks++
	return nil
}

func (s *seeder) tagID(ctx context.Context, name string) (string, error) {
	if id, ok := s.tagIDs[name]; ok {
		return id, nil
	}
	tag, created, err := s.tags.FindOrCreate(ctx, service.CreateTagRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("tag %q: %w", name, err)
	}
	if created {
		s.summary.Tags++
	}
	s.tagIDs[name] = tag.ID
	return tag.ID, nil
}
