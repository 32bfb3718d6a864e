package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pribylovaa/go-food-reviews/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	reviewsCollection = "reviews"
	usersCollection   = "users"
	defaultDBName     = "food_reviews"
)

// Mongo - тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	cfg     *config.Config
	client  *mongodriver.Client
	db      *mongodriver.Database
	reviews *mongodriver.Collection
	users   *mongodriver.Collection
}

// New подключается к MongoDB, проверяет его, подготавливает коллекции и обеспечивает индексацию.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.DB.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.DB.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	dbName := databaseFromURI(cfg.DB.URL)
	db := cli.Database(dbName)

	m := &Mongo{
		cfg:     cfg,
		client:  cli,
		db:      db,
		reviews: db.Collection(reviewsCollection),
		users:   db.Collection(usersCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ensureIndexes создает индексы, необходимые сервису обзоров.
// - Уникальность email пользователей.
// - Вторичный индекс по comments.id: все операции над комментарием ищут
//   родительский обзор по вложенному полю через всю коллекцию.
// - rating для фильтра min_rating.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	reviewModels := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "comments.id", Value: 1}},
			Options: options.Index().SetName("comments_id"),
		},
		{
			Keys:    bson.D{{Key: "rating", Value: 1}},
			Options: options.Index().SetName("rating_asc"),
		},
	}

	if _, err := m.reviews.Indexes().CreateMany(ctx, reviewModels); err != nil {
		return fmt.Errorf("mongo ensure review indexes: %w", err)
	}

	userModels := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		},
	}

	if _, err := m.users.Indexes().CreateMany(ctx, userModels); err != nil {
		return fmt.Errorf("mongo ensure user indexes: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддается расшифровке, возвращает разумное значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}
