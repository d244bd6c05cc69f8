package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/oksasatya/artflow-api/config"
	pginfra "github.com/oksasatya/artflow-api/internal/infrastructure/postgres"
	"github.com/oksasatya/artflow-api/internal/infrastructure/search"
	"github.com/oksasatya/artflow-api/pkg/helpers"
)

type seedArtist struct {
	name, email, mobile, field, interest, language string
	rating                                         float64
}

var artists = []seedArtist{
	{"Meera Nair", "meera@artflow.dev", "9000000001", "Painting", "Murals", "English", 4.6},
	{"Arjun Rao", "arjun@artflow.dev", "9000000002", "Sculpture", "Bronze", "Hindi", 4.1},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	password := "password123"
	hash, err := helpers.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (name, mobile, email, password_hash, is_verified)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, is_verified = TRUE
		RETURNING id
	`, "Demo User", "9000000000", "demo@artflow.dev", hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=demo@artflow.dev password=%s\n", userID, password)

	ids := make([]string, 0, len(artists))
	for _, a := range artists {
		var id string
		err := pool.QueryRow(ctx, `
			INSERT INTO artists (name, email, password_hash, mobile, field, interest, communication_language,
			                     is_verified, is_approved, rating)
			VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, TRUE, $8)
			ON CONFLICT (email) DO UPDATE SET rating = EXCLUDED.rating
			RETURNING id
		`, a.name, a.email, hash, a.mobile, a.field, a.interest, a.language, a.rating).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed artist %s: %v", a.email, err)
		}
		ids = append(ids, id)
		fmt.Printf("seeded artist: id=%s name=%s\n", id, a.name)
	}

	// one post per artist, only on first run
	for _, id := range ids {
		err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			var n int
			if err := tx.QueryRow(ctx, `SELECT count(*) FROM posts WHERE posted_by = $1`, id).Scan(&n); err != nil {
				return err
			}
			if n > 0 {
				return nil
			}
			var postID string
			if err := tx.QueryRow(ctx, `
				INSERT INTO posts (posted_by, description, image) VALUES ($1, $2, $3) RETURNING id
			`, id, "First work on ArtFlow", "post.png").Scan(&postID); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `UPDATE artists SET posts = array_append(posts, $2::uuid) WHERE id = $1`, id, postID)
			return err
		})
		if err != nil {
			log.Fatalf("failed to seed post for %s: %v", id, err)
		}
	}

	addrs := cfg.ESAddrs()
	if len(addrs) == 0 {
		return
	}
	es, err := search.NewClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		logger.WithError(err).Warn("skipping artist indexing")
		return
	}
	idx := search.NewArtistIndex(es, cfg.ESArtistsIndex, logger)
	found, err := pginfra.NewArtistRepository(pool).GetByIDs(ctx, ids)
	if err != nil {
		log.Fatalf("failed to load artists: %v", err)
	}
	for i := range found {
		if err := idx.IndexArtist(ctx, &found[i]); err != nil {
			logger.WithError(err).WithField("artist_id", found[i].ID).Warn("index artist")
		}
	}
	fmt.Printf("indexed %d artists into %s\n", len(found), cfg.ESArtistsIndex)
}
