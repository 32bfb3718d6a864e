package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pribylovaa/go-food-reviews/internal/models"
	"github.com/pribylovaa/go-food-reviews/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// reviewDoc — представление обзора в коллекции reviews.
// Комментарии встроены в документ: "обзор с комментариями" читается одним
// запросом, а мутации комментариев обязаны использовать атомарные массивные
// операторы ($push / comments.$ / $pull) вместо перезаписи документа.
type reviewDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Food      string             `bson:"food"`
	Content   string             `bson:"content"`
	Rating    int32              `bson:"rating"`
	Comments  []commentDoc       `bson:"comments"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// commentDoc — элемент встроенного массива comments.
// id — hex нового ObjectID, глобально уникален, в _id не дублируется.
type commentDoc struct {
	ID       string `bson:"id"`
	Content  string `bson:"content"`
	Nickname string `bson:"nickname"`
}

func (d reviewDoc) toModel() models.Review {
	out := models.Review{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Food:      d.Food,
		Content:   d.Content,
		Rating:    d.Rating,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}

	for _, c := range d.Comments {
		out.Comments = append(out.Comments, models.Comment{
			ID:       c.ID,
			Content:  c.Content,
			Nickname: c.Nickname,
		})
	}

	return out
}

// toMS приводит время к миллисекундам: MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

// SaveReview создаёт обзор с серверным ObjectID.
func (m *Mongo) SaveReview(ctx context.Context, review models.Review) (*models.Review, error) {
	const op = "storage/mongo/SaveReview"

	now := toMS(time.Now())

	doc := reviewDoc{
		Title:     review.Title,
		Food:      review.Food,
		Content:   review.Content,
		Rating:    review.Rating,
		Comments:  []commentDoc{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := m.reviews.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		// Mongo всегда возвращает ObjectID.
		return nil, fmt.Errorf("%s: inserted id type", op)
	}

	doc.ID = oid
	out := doc.toModel()
	return &out, nil
}

// ListReviews возвращает обзоры по фильтру. Проекция исключает comments:
// массив неограничен, и списочная выдача не должна его тащить.
// Сортировка — _id ASC, что для ObjectID совпадает с порядком вставки.
func (m *Mongo) ListReviews(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	const op = "storage/mongo/ListReviews"

	query := bson.D{}

	if title := strings.TrimSpace(filter.Title); title != "" {
		query = append(query, bson.E{Key: "title", Value: bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(title)},
			{Key: "$options", Value: "i"},
		}})
	}

	if filter.MinRating != nil {
		query = append(query, bson.E{Key: "rating", Value: bson.D{
			{Key: "$gte", Value: *filter.MinRating},
		}})
	}

	findOpts := options.Find().
		SetProjection(bson.D{{Key: "comments", Value: 0}}).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := m.reviews.Find(ctx, query, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var items []models.Review
	for cur.Next(ctx) {
		var doc reviewDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		items = append(items, doc.toModel())
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return items, nil
}

// ReviewByID возвращает обзор вместе с комментариями (детальная выдача).
// Некорректный формат id трактуется как «нет такой записи».
func (m *Mongo) ReviewByID(ctx context.Context, id string) (*models.Review, error) {
	const op = "storage/mongo/ReviewByID"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var doc reviewDoc
	if err := m.reviews.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.toModel()
	return &out, nil
}

// UpdateReview применяет "sparse PUT": в $set попадают только переданные
// поля, остальные сохраняют прежние значения. Одна атомарная операция
// FindOneAndUpdate вместо read-modify-write, чтобы конкурентные обновления
// одного обзора не теряли чужие поля.
func (m *Mongo) UpdateReview(ctx context.Context, id string, patch models.ReviewPatch) (*models.Review, error) {
	const op = "storage/mongo/UpdateReview"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	set := bson.D{}
	if patch.Title != "" {
		set = append(set, bson.E{Key: "title", Value: patch.Title})
	}
	if patch.Food != "" {
		set = append(set, bson.E{Key: "food", Value: patch.Food})
	}
	if patch.Content != "" {
		set = append(set, bson.E{Key: "content", Value: patch.Content})
	}
	if patch.Rating != 0 {
		set = append(set, bson.E{Key: "rating", Value: patch.Rating})
	}

	if len(set) == 0 {
		// Пустой патч: менять нечего, отдаём текущее состояние.
		return m.ReviewByID(ctx, id)
	}

	set = append(set, bson.E{Key: "updated_at", Value: toMS(time.Now())})

	findOpts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc reviewDoc
	err = m.reviews.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		findOpts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.toModel()
	return &out, nil
}

// DeleteReview удаляет обзор по id вместе со встроенными комментариями.
func (m *Mongo) DeleteReview(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteReview"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.reviews.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// AddComment атомарно дописывает комментарий в массив родительского обзора.
// $push вместо чтения/перезаписи документа: конкурентные добавления в один
// обзор не теряются. Если обзор не найден — ErrNotFound, сирот не создаём.
func (m *Mongo) AddComment(ctx context.Context, reviewID string, comment models.Comment) (*models.Comment, error) {
	const op = "storage/mongo/AddComment"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(reviewID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	doc := commentDoc{
		ID:       primitive.NewObjectID().Hex(),
		Content:  comment.Content,
		Nickname: comment.Nickname,
	}

	res, err := m.reviews.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "comments", Value: doc}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: toMS(time.Now())}}},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return &models.Comment{
		ID:       doc.ID,
		Content:  doc.Content,
		Nickname: doc.Nickname,
	}, nil
}

// UpdateComment находит обзор, содержащий комментарий с данным id, и
// позиционным оператором переписывает content/nickname единственного
// совпавшего элемента. id элемента не меняется. Поиск — по вложенному
// полю comments.id через всю коллекцию (вторичный индекс comments_id).
func (m *Mongo) UpdateComment(ctx context.Context, commentID, content, nickname string) error {
	const op = "storage/mongo/UpdateComment"

	res, err := m.reviews.UpdateOne(ctx,
		bson.D{{Key: "comments.id", Value: strings.TrimSpace(commentID)}},
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "comments.$.content", Value: content},
				{Key: "comments.$.nickname", Value: nickname},
				{Key: "updated_at", Value: toMS(time.Now())},
			}},
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteComment атомарно выталкивает элемент из массива comments того
// обзора, который его содержит. Остальные обзоры не затрагиваются.
func (m *Mongo) DeleteComment(ctx context.Context, commentID string) error {
	const op = "storage/mongo/DeleteComment"

	cid := strings.TrimSpace(commentID)

	res, err := m.reviews.UpdateOne(ctx,
		bson.D{{Key: "comments.id", Value: cid}},
		bson.D{
			{Key: "$pull", Value: bson.D{
				{Key: "comments", Value: bson.D{{Key: "id", Value: cid}}},
			}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: toMS(time.Now())}}},
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
