package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/online-cinema/internal/models"
)

// FindUserByID возвращает пользователя по его идентификатору.
func (s *Storage) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "mongodb.FindUserByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var u models.User
	if err := s.users().FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// FindUserByEmail возвращает пользователя по email. Сравнение точное,
// с учётом регистра — так email хранится в документе.
func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "mongodb.FindUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var u models.User
	if err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// InsertUser сохраняет нового пользователя и возвращает его идентификатор.
func (s *Storage) InsertUser(ctx context.Context, user models.User) (string, error) {
	const op = "mongodb.InsertUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Favorites == nil {
		user.Favorites = []string{}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if _, err := s.users().InsertOne(ctx, user); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return user.ID, nil
}

// UpdateUserProfile перезаписывает поля профиля пользователя.
// Поля-указатели со значением nil не включаются в $set и остаются
// нетронутыми, в том числе явный false для is_admin записывается как есть.
func (s *Storage) UpdateUserProfile(ctx context.Context, id string, upd models.UserProfileUpdate) error {
	const op = "mongodb.UpdateUserProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	set := bson.M{"email": upd.Email}
	if upd.PasswordHash != nil {
		set["password_hash"] = *upd.PasswordHash
	}
	if upd.IsAdmin != nil {
		set["is_admin"] = *upd.IsAdmin
	}

	res, err := s.users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// UpdateUserFavorites перезаписывает список избранного целиком.
// Запись идёт снимком всего массива: при двух конкурентных запросах
// к одному пользователю сохранится последний.
func (s *Storage) UpdateUserFavorites(ctx context.Context, id string, favorites []string) error {
	const op = "mongodb.UpdateUserFavorites"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if favorites == nil {
		favorites = []string{}
	}
	res, err := s.users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"favorites": favorites}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// DeleteUser удаляет пользователя и возвращает удалённый документ.
func (s *Storage) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	const op = "mongodb.DeleteUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var u models.User
	if err := s.users().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// CountUsers возвращает общее количество пользователей.
func (s *Storage) CountUsers(ctx context.Context) (int64, error) {
	const op = "mongodb.CountUsers"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	count, err := s.users().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListUsers возвращает список пользователей, отсортированный по дате
// создания по убыванию, без хэшей паролей. При непустом searchTerm
// отбираются пользователи, чей email содержит подстроку без учёта регистра.
func (s *Storage) ListUsers(ctx context.Context, searchTerm string) ([]*models.User, error) {
	const op = "mongodb.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	filter := bson.M{}
	if searchTerm != "" {
		filter = bson.M{"$or": bson.A{
			bson.M{"email": primitive.Regex{Pattern: searchTerm, Options: "i"}},
		}}
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetProjection(bson.M{"password_hash": 0})

	cur, err := s.users().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = cur.Close(ctx)
	}()

	var result []*models.User
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
