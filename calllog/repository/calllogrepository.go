package repository

import (
	"sync"

	"github.com/jpmpuerm/infirmary-client/calllog/model"

	"github.com/rs/zerolog/log"
)

type CallLogRepository interface {
	CreateCallLog(entity model.CallLogEntity)
	LoadCallLogs(outcome *model.Outcome) []model.CallLogEntity
}

// CallLogStorage keeps the newest entries first and forgets the oldest once size is reached
type CallLogStorage struct {
	mutex    *sync.Mutex
	callLogs []*model.CallLogEntity
	size     int
}

func NewCallLogRepository(size int) CallLogRepository {
	log.Trace().Msg("Creating new call log repository")
	if size < 1 {
		size = 1
	}
	return &CallLogStorage{
		mutex:    &sync.Mutex{},
		callLogs: make([]*model.CallLogEntity, 0, size),
		size:     size,
	}
}

func (s *CallLogStorage) CreateCallLog(entity model.CallLogEntity) {
	log.Trace().Interface("object", entity).Msg("Saving call log")
	s.store(&entity)
}

// LoadCallLogs returns the stored entries, newest first. A nil outcome returns all of them.
func (s *CallLogStorage) LoadCallLogs(outcome *model.Outcome) []model.CallLogEntity {
	log.Trace().Msg("Loading call logs")
	s.mutex.Lock()
	defer s.mutex.Unlock()
	callLogEntities := make([]model.CallLogEntity, 0, len(s.callLogs))
	for _, callLog := range s.callLogs {
		if callLog == nil {
			continue
		}
		if outcome == nil || callLog.Outcome == *outcome {
			callLogEntities = append(callLogEntities, *callLog)
		}
	}
	return callLogEntities
}

func (s *CallLogStorage) store(entity *model.CallLogEntity) {
	s.mutex.Lock()
	if len(s.callLogs) < s.size {
		s.callLogs = append(s.callLogs, nil)
	}
	copy(s.callLogs[1:], s.callLogs)
	s.callLogs[0] = entity
	s.mutex.Unlock()
}
