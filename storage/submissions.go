package storage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hackday-platform/judging-api/logging"
)

type SubmissionStorage interface {
	Get(ctx context.Context, id string) (*Submission, error)
	GetAll(ctx context.Context) ([]*Submission, error)
	Create(ctx context.Context, submission *Submission) error
	Claim(ctx context.Context, id, judgeID string) error
	ReleaseClaim(ctx context.Context, id, judgeID string) error
	PatchJudging(ctx context.Context, id string, score int, notes string) error
	UnsetScore(ctx context.Context, id string) error
	PatchFinalistScores(ctx context.Context, id string, scores []FinalistScore, total int, expectedVersion int64) error
}

type DynamoSubmissionStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoSubmissionStorage) Get(ctx context.Context, id string) (*Submission, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("SUBMISSION: failed to marshal key: %v", err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("SUBMISSION: GetItem for %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrSubmissionNotFound
	}

	var submission Submission
	if err := attributevalue.UnmarshalMap(out.Item, &submission); err != nil {
		logging.Log.Errorf("SUBMISSION: failed to unmarshal item: %v", err)
		return nil, err
	}
	return &submission, nil
}

func (s *DynamoSubmissionStorage) GetAll(ctx context.Context) ([]*Submission, error) {
	var submissions []*Submission
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         &s.TableName,
			ExclusiveStartKey: lastEvaluatedKey,
		})
		if err != nil {
			logging.Log.Errorf("SUBMISSION: scan failed: %v", err)
			return nil, err
		}

		var page []*Submission
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			logging.Log.Errorf("SUBMISSION: failed to unmarshal scan page: %v", err)
			return nil, err
		}
		submissions = append(submissions, page...)

		if out.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = out.LastEvaluatedKey
	}
	return submissions, nil
}

func (s *DynamoSubmissionStorage) Create(ctx context.Context, submission *Submission) error {
	now := time.Now().UTC()
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = now
	}
	if submission.UpdatedAt.IsZero() {
		submission.UpdatedAt = now
	}

	item, err := attributevalue.MarshalMap(submission)
	if err != nil {
		logging.Log.Errorf("SUBMISSION: failed to marshal submission: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("SUBMISSION: submission %s already exists", submission.ID)
			return ErrSubmissionAlreadyExists
		}
		logging.Log.Errorf("SUBMISSION: failed to create submission: %v", err)
		return err
	}
	return nil
}

// Claim assigns the submission to judgeID. The condition covers both the
// unclaimed case and an idempotent re-claim by the same judge, so the
// read/patch race between two judges collapses into a single conditional
// write on the item.
func (s *DynamoSubmissionStorage) Claim(ctx context.Context, id, judgeID string) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:    aws.String("SET JudgeID = :judge, UpdatedAt = :now ADD Version :one"),
		ConditionExpression: aws.String("attribute_exists(PK) AND (attribute_not_exists(JudgeID) OR JudgeID = :judge)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":judge": &types.AttributeValueMemberS{Value: judgeID},
			":now":   mustMarshalTime(time.Now().UTC()),
			":one":   &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("SUBMISSION: claim on %s lost to another judge", id)
			return ErrClaimConflict
		}
		logging.Log.Errorf("SUBMISSION: failed to claim %s: %v", id, err)
		return err
	}
	return nil
}

// ReleaseClaim clears the claim, but only for the judge that holds it.
func (s *DynamoSubmissionStorage) ReleaseClaim(ctx context.Context, id, judgeID string) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:    aws.String("REMOVE JudgeID SET UpdatedAt = :now ADD Version :one"),
		ConditionExpression: aws.String("attribute_exists(PK) AND JudgeID = :judge"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":judge": &types.AttributeValueMemberS{Value: judgeID},
			":now":   mustMarshalTime(time.Now().UTC()),
			":one":   &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("SUBMISSION: release of %s refused, claim not held by %s", id, judgeID)
			return ErrNotClaimOwner
		}
		logging.Log.Errorf("SUBMISSION: failed to release claim on %s: %v", id, err)
		return err
	}
	return nil
}

// PatchJudging writes the initial score, notes and the reviewed flag in one
// patch. Last write wins; there is a single initial score per submission.
func (s *DynamoSubmissionStorage) PatchJudging(ctx context.Context, id string, score int, notes string) error {
	update := "SET Score = :score, Reviewed = :reviewed, UpdatedAt = :now ADD Version :one"
	values := map[string]types.AttributeValue{
		":score":    &types.AttributeValueMemberN{Value: strconv.Itoa(score)},
		":reviewed": &types.AttributeValueMemberBOOL{Value: true},
		":now":      mustMarshalTime(time.Now().UTC()),
		":one":      &types.AttributeValueMemberN{Value: "1"},
	}
	if notes != "" {
		update = "SET Score = :score, JudgeNotes = :notes, Reviewed = :reviewed, UpdatedAt = :now ADD Version :one"
		values[":notes"] = &types.AttributeValueMemberS{Value: notes}
	}

	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:          aws.String(update),
		ConditionExpression:       aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: values,
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return ErrSubmissionNotFound
		}
		logging.Log.Errorf("SUBMISSION: failed to patch judging fields on %s: %v", id, err)
		return err
	}
	return nil
}

// UnsetScore clears the initial score only. Reviewed stays as it is, so the
// admin correction path does not push the submission back into the queue.
func (s *DynamoSubmissionStorage) UnsetScore(ctx context.Context, id string) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:    aws.String("REMOVE Score SET UpdatedAt = :now ADD Version :one"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": mustMarshalTime(time.Now().UTC()),
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return ErrSubmissionNotFound
		}
		logging.Log.Errorf("SUBMISSION: failed to unset score on %s: %v", id, err)
		return err
	}
	return nil
}

// PatchFinalistScores persists the whole finalist score set plus the derived
// total in one patch. The version condition rejects the write if the item
// changed since the caller read it, since the upsert is computed outside the
// store.
func (s *DynamoSubmissionStorage) PatchFinalistScores(ctx context.Context, id string, scores []FinalistScore, total int, expectedVersion int64) error {
	scoresAttr, err := attributevalue.Marshal(scores)
	if err != nil {
		logging.Log.Errorf("SUBMISSION: failed to marshal finalist scores: %v", err)
		return err
	}

	condition := "attribute_exists(PK) AND Version = :expected"
	values := map[string]types.AttributeValue{
		":scores":   scoresAttr,
		":total":    &types.AttributeValueMemberN{Value: strconv.Itoa(total)},
		":now":      mustMarshalTime(time.Now().UTC()),
		":one":      &types.AttributeValueMemberN{Value: "1"},
		":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
	}
	if expectedVersion == 0 {
		condition = "attribute_exists(PK) AND attribute_not_exists(Version)"
		delete(values, ":expected")
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:          aws.String("SET FinalistScores = :scores, TotalFinalistScore = :total, UpdatedAt = :now ADD Version :one"),
		ConditionExpression:       aws.String(condition),
		ExpressionAttributeValues: values,
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("SUBMISSION: finalist patch on %s hit a concurrent update", id)
			return ErrVersionConflict
		}
		logging.Log.Errorf("SUBMISSION: failed to patch finalist scores on %s: %v", id, err)
		return err
	}
	return nil
}

func mustMarshalTime(t time.Time) types.AttributeValue {
	av, err := attributevalue.Marshal(t)
	if err != nil {
		// time.Time always marshals; this only fires on a broken build.
		panic(err)
	}
	return av
}

