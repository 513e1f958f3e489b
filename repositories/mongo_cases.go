package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"legal-timeline/db"
	"legal-timeline/models"
)

type MongoCaseRepository struct {
	client        *mongo.Client
	cases         *mongo.Collection
	recent        *mongo.Collection
	transactional bool
}

// NewMongoCaseRepository 는 cases / recent_cases 컬렉션을 사용하는 저장소를 만든다.
// transactional 이 true 이면 두 쓰기를 멀티 도큐먼트 트랜잭션으로 묶는다 (replica set 필요).
func NewMongoCaseRepository(d *mongo.Database, transactional bool) *MongoCaseRepository {
	return &MongoCaseRepository{
		client:        d.Client(),
		cases:         d.Collection(db.CollectionCases),
		recent:        d.Collection(db.CollectionRecentCases),
		transactional: transactional,
	}
}

func userCaseFilter(userID, caseID string) bson.M {
	return bson.M{"user_id": userID, "case_id": caseID}
}

// UpsertCase 는 Case 전체를 덮어쓴다. uploaded_at 은 $currentDate 로 서버 시각이 들어간다.
func (r *MongoCaseRepository) UpsertCase(ctx context.Context, c *models.Case) error {
	set := bson.M{
		"case_id":     c.CaseID,
		"user_id":     c.UserID,
		"title":       c.Title,
		"events":      c.Events,
		"text_length": c.TextLength,
	}
	update := bson.M{
		"$set":         set,
		"$currentDate": bson.M{"uploaded_at": true},
	}
	if c.FileCount != nil {
		set["file_count"] = *c.FileCount
		set["file_names"] = c.FileNames
	} else {
		// 같은 caseId 로 텍스트 재제출 시 이전 파일 메타데이터를 남기지 않는다.
		update["$unset"] = bson.M{"file_count": "", "file_names": ""}
	}

	_, err := r.cases.UpdateOne(ctx, userCaseFilter(c.UserID, c.CaseID), update, options.Update().SetUpsert(true))
	return err
}

func (r *MongoCaseRepository) UpsertRecent(ctx context.Context, s *models.RecentCaseSummary) error {
	set := bson.M{
		"case_id":          s.CaseID,
		"user_id":          s.UserID,
		"title":            s.Title,
		"event_count":      s.EventCount,
		"first_event_date": s.FirstEventDate,
	}
	update := bson.M{
		"$set":         set,
		"$currentDate": bson.M{"uploaded_at": true},
	}
	if s.FileCount != nil {
		set["file_count"] = *s.FileCount
	} else {
		update["$unset"] = bson.M{"file_count": ""}
	}

	_, err := r.recent.UpdateOne(ctx, userCaseFilter(s.UserID, s.CaseID), update, options.Update().SetUpsert(true))
	return err
}

func (r *MongoCaseRepository) FindCase(ctx context.Context, userID, caseID string) (*models.Case, error) {
	var c models.Case
	err := r.cases.FindOne(ctx, userCaseFilter(userID, caseID)).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MongoCaseRepository) ListRecent(ctx context.Context, userID string, limit int) ([]models.RecentCaseSummary, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "uploaded_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.recent.Find(ctx, bson.M{"user_id": userID}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := make([]models.RecentCaseSummary, 0, limit)
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoCaseRepository) DeleteCase(ctx context.Context, userID, caseID string) error {
	_, err := r.cases.DeleteOne(ctx, userCaseFilter(userID, caseID))
	return err
}

func (r *MongoCaseRepository) DeleteRecent(ctx context.Context, userID, caseID string) error {
	_, err := r.recent.DeleteOne(ctx, userCaseFilter(userID, caseID))
	return err
}

func (r *MongoCaseRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !r.transactional {
		return fn(ctx)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (r *MongoCaseRepository) Ping(ctx context.Context) error {
	return r.cases.Database().RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}
