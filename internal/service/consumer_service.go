package service

import (
	"context"
	"encoding/json"
	"time"

	"concept-search-be/internal/dto"
	"concept-search-be/internal/entity"
	"concept-search-be/internal/pkg/logger"
	"concept-search-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IConsumerService drains search-performed messages into the search
// history table so the request path never blocks on the database.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	searchLogRepo contract.SearchLogRepository
	logger        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	searchLogRepo contract.SearchLogRepository,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		searchLogRepo: searchLogRepo,
		logger:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.SearchPerformedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("search-history", "Failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	tokens := make([]entity.SearchToken, 0, len(payload.Tokens))
	for _, t := range payload.Tokens {
		op := entity.Operator(t.Operator)
		if !op.Valid() {
			op = entity.OperatorAnd
		}
		tokens = append(tokens, entity.SearchToken{
			Id:          t.Id,
			Name:        t.Name,
			Type:        t.Type,
			Description: t.Description,
			Operator:    op,
		})
	}

	searchedAt := payload.SearchedAt
	if searchedAt.IsZero() {
		searchedAt = time.Now()
	}

	log := entity.SearchLog{
		Id:         uuid.New(),
		SessionID:  payload.SessionID,
		Query:      payload.Query,
		Tokens:     tokens,
		TokenCount: len(tokens),
		SearchedAt: searchedAt,
	}

	if err := cs.searchLogRepo.Create(ctx, &log); err != nil {
		cs.logger.Error("search-history", "Failed to persist search log", map[string]interface{}{
			"session_id": payload.SessionID,
			"error":      err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	cs.logger.Info("search-history", "Search logged", map[string]interface{}{
		"session_id":  payload.SessionID,
		"token_count": log.TokenCount,
	})
	msg.Ack()
}
