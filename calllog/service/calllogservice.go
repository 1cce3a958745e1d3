package service

import (
	"time"

	"github.com/jpmpuerm/infirmary-client/calllog/model"
	"github.com/jpmpuerm/infirmary-client/calllog/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type CallLogService interface {
	Succeeded(method, url string, status int, duration time.Duration) uuid.UUID
	Failed(method, url string, status int, duration time.Duration) uuid.UUID
	GetCallLogs() []model.CallLogDTO
	GetFailedCallLogs() []model.CallLogDTO
}

type callLogService struct {
	repository repository.CallLogRepository
}

func NewCallLogService(repository repository.CallLogRepository) CallLogService {
	log.Trace().Msg("Creating new call log service")
	return &callLogService{
		repository: repository,
	}
}

func (s *callLogService) createCallLog(outcome model.Outcome, method, url string, status int, duration time.Duration) uuid.UUID {
	log.Trace().Interface("outcome", outcome).Str("url", url).Msg("Creating call log")

	newCallLogEntity := model.CallLogEntity{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Method:    method,
		URL:       url,
		Status:    status,
		Outcome:   outcome,
		Duration:  duration,
	}

	s.repository.CreateCallLog(newCallLogEntity)

	return newCallLogEntity.ID
}

func (s *callLogService) Succeeded(method, url string, status int, duration time.Duration) uuid.UUID {
	return s.createCallLog(model.Succeeded, method, url, status, duration)
}

func (s *callLogService) Failed(method, url string, status int, duration time.Duration) uuid.UUID {
	return s.createCallLog(model.Failed, method, url, status, duration)
}

func (s *callLogService) GetCallLogs() []model.CallLogDTO {
	log.Trace().Msg("Getting call logs")
	return toCallLogDTOs(s.repository.LoadCallLogs(nil))
}

func (s *callLogService) GetFailedCallLogs() []model.CallLogDTO {
	log.Trace().Msg("Getting failed call logs")
	failed := model.Failed
	return toCallLogDTOs(s.repository.LoadCallLogs(&failed))
}

func toCallLogDTOs(loadedCallLogEntities []model.CallLogEntity) []model.CallLogDTO {
	entityCount := len(loadedCallLogEntities)
	callLogDTOs := make([]model.CallLogDTO, entityCount)
	for i := 0; i < entityCount; i++ {
		callLogEntity := loadedCallLogEntities[i]
		callLogDTOs[i] = model.CallLogDTO{
			ID:         callLogEntity.ID,
			CreatedAt:  callLogEntity.CreatedAt,
			Method:     callLogEntity.Method,
			URL:        callLogEntity.URL,
			Status:     callLogEntity.Status,
			Outcome:    callLogEntity.Outcome,
			DurationMs: callLogEntity.Duration.Milliseconds(),
		}
	}

	return callLogDTOs
}
