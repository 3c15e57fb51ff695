package availabilities

import (
	"context"
	"errors"
	"fmt"
	"medirdv-service/internal/app/config"
	"medirdv-service/internal/app/contracts"
	"medirdv-service/internal/pkg/availability"
	"medirdv-service/internal/pkg/constvars"
	"medirdv-service/internal/pkg/dto/requests"
	"medirdv-service/internal/pkg/dto/responses"
	"medirdv-service/internal/pkg/exceptions"
	"medirdv-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultBatchConcurrency = 8

type availabilityUsecase struct {
	PhysicianBackend contracts.PhysicianBackendClient
	ClinicBackend    contracts.ClinicBackendClient
	RedisRepository  contracts.RedisRepository
	Locker           contracts.LockerService
	Publisher        contracts.AvailabilityPublisher
	Storage          contracts.Storage
	Resolver         *availability.Resolver
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
}

// Dependencies groups the collaborators of the availability usecase. Only the
// backend clients and the resolver are mandatory: without a redis repository
// nothing is cached, without a publisher no event is emitted and without a
// locker snapshots are taken without the leader lock.
type Dependencies struct {
	PhysicianBackend contracts.PhysicianBackendClient
	ClinicBackend    contracts.ClinicBackendClient
	RedisRepository  contracts.RedisRepository
	Locker           contracts.LockerService
	Publisher        contracts.AvailabilityPublisher
	Storage          contracts.Storage
	Resolver         *availability.Resolver
}

func NewAvailabilityUsecase(deps Dependencies, internalConfig *config.InternalConfig, logger *zap.Logger) contracts.AvailabilityUsecase {
	return &availabilityUsecase{
		PhysicianBackend: deps.PhysicianBackend,
		ClinicBackend:    deps.ClinicBackend,
		RedisRepository:  deps.RedisRepository,
		Locker:           deps.Locker,
		Publisher:        deps.Publisher,
		Storage:          deps.Storage,
		Resolver:         deps.Resolver,
		InternalConfig:   internalConfig,
		Log:              logger,
	}
}

func (uc *availabilityUsecase) FindPhysicianAvailability(ctx context.Context, physicianID string) (*responses.Availability, error) {
	return uc.findAvailability(ctx, constvars.SubjectTypePhysician, physicianID)
}

func (uc *availabilityUsecase) FindClinicAvailability(ctx context.Context, clinicID string) (*responses.Availability, error) {
	return uc.findAvailability(ctx, constvars.SubjectTypeClinic, clinicID)
}

func (uc *availabilityUsecase) findAvailability(ctx context.Context, subjectType, subjectID string) (*responses.Availability, error) {
	requestID := utils.GetRequestID(ctx)

	subject, err := uc.findSubject(ctx, subjectType, subjectID)
	if err != nil {
		uc.Log.Error("availabilityUsecase.findAvailability error fetching subject",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSubjectTypeKey, subjectType),
			zap.String(constvars.LoggingSubjectIDKey, subjectID),
			zap.Error(err),
		)
		return nil, err
	}

	result := uc.resolve(subject, uc.Resolver.Now())
	uc.Log.Info("availabilityUsecase.findAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectTypeKey, subjectType),
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
		zap.String(constvars.LoggingStatusKindKey, string(result.Status.Kind)),
	)
	return result, nil
}

func (uc *availabilityUsecase) FindPhysiciansAvailability(ctx context.Context, request *requests.FindPhysiciansAvailability) (*responses.BatchAvailability, error) {
	requestID := utils.GetRequestID(ctx)
	if len(request.IDs) > constvars.MaxBatchAvailabilityIDs {
		return nil, exceptions.ErrTooManyIDs(nil, len(request.IDs))
	}

	now := uc.Resolver.Now()
	items := make([]*responses.Availability, len(request.IDs))
	failures := make([]*responses.AvailabilityFailure, len(request.IDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.batchConcurrency())
	for i, physicianID := range request.IDs {
		i, physicianID := i, physicianID
		g.Go(func() error {
			subject, err := uc.findSubject(gctx, constvars.SubjectTypePhysician, physicianID)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				failures[i] = &responses.AvailabilityFailure{
					SubjectID: physicianID,
					Message:   exceptions.ToCustomError(err).ClientMessage,
				}
				return nil
			}
			items[i] = uc.resolve(subject, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		uc.Log.Error("availabilityUsecase.FindPhysiciansAvailability aborted",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := &responses.BatchAvailability{Items: make([]responses.Availability, 0, len(request.IDs))}
	for i := range request.IDs {
		if items[i] != nil {
			response.Items = append(response.Items, *items[i])
		}
		if failures[i] != nil {
			response.Failures = append(response.Failures, *failures[i])
		}
	}

	uc.Log.Info("availabilityUsecase.FindPhysiciansAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(response.Items)),
	)
	return response, nil
}

func (uc *availabilityUsecase) ResolveSchedule(ctx context.Context, request *requests.ResolveAvailability) (*responses.ResolvedSchedule, error) {
	now := uc.Resolver.Now()
	if request.Now != "" {
		parsed, err := time.Parse(time.RFC3339, request.Now)
		if err != nil {
			return nil, exceptions.ErrCannotParseTime(err, request.Now)
		}
		now = parsed
	}

	names := uc.names()
	if request.Locale != "" {
		names = availability.NamesForLocale(request.Locale)
	}
	policy := uc.policy()
	if request.Policy != "" {
		policy = availability.ParseOpeningPolicy(request.Policy)
	}

	schedule := availability.ParseWorkingHours(request.WorkingHours)
	status := availability.Resolve(now, schedule, availability.WithNames(names), availability.WithPolicy(policy))

	uc.Log.Debug("availabilityUsecase.ResolveSchedule succeeded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingStatusKindKey, string(status.Kind)),
	)
	return &responses.ResolvedSchedule{
		Status:     status,
		ResolvedAt: now,
		Locale:     localeOf(names),
		Policy:     string(policy),
	}, nil
}

func (uc *availabilityUsecase) HandleWorkingHoursChanged(ctx context.Context, request *requests.WorkingHoursChanged) (*responses.Availability, error) {
	requestID := utils.GetRequestID(ctx)
	key := scheduleCacheKey(request.SubjectType, request.SubjectID)

	if uc.RedisRepository != nil {
		if err := uc.RedisRepository.Delete(ctx, key); err != nil {
			uc.Log.Warn("availabilityUsecase.HandleWorkingHoursChanged error dropping cached schedule",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}

	var subject *responses.Subject
	if len(request.WorkingHours) > 0 {
		subject = &responses.Subject{
			Type:         request.SubjectType,
			ID:           request.SubjectID,
			WorkingHours: availability.ParseWorkingHours(request.WorkingHours),
		}
	} else {
		fetched, err := uc.fetchSubject(ctx, request.SubjectType, request.SubjectID)
		if err != nil {
			return nil, err
		}
		uc.cacheSubject(ctx, fetched)
		subject = fetched
	}

	result := uc.resolve(subject, uc.Resolver.Now())
	if err := uc.publish(ctx, result); err != nil {
		return nil, err
	}

	uc.Log.Info("availabilityUsecase.HandleWorkingHoursChanged succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectTypeKey, request.SubjectType),
		zap.String(constvars.LoggingSubjectIDKey, request.SubjectID),
		zap.String(constvars.LoggingStatusKindKey, string(result.Status.Kind)),
	)
	return result, nil
}

func (uc *availabilityUsecase) BuildSnapshot(ctx context.Context) (*responses.Snapshot, error) {
	var (
		physicians []responses.Physician
		clinics    []responses.Clinic
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		physicians, err = uc.PhysicianBackend.FindAllPhysicians(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		clinics, err = uc.ClinicBackend.FindAllClinics(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		uc.Log.Error("availabilityUsecase.BuildSnapshot error listing subjects",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, err
	}

	now := uc.Resolver.Now()
	snapshot := &responses.Snapshot{
		GeneratedAt: now,
		Physicians:  make([]responses.Availability, 0, len(physicians)),
		Clinics:     make([]responses.Availability, 0, len(clinics)),
	}
	for i := range physicians {
		subject := responses.SubjectFromPhysician(&physicians[i])
		uc.cacheSubject(ctx, subject)
		snapshot.Physicians = append(snapshot.Physicians, *uc.resolve(subject, now))
	}
	for i := range clinics {
		subject := responses.SubjectFromClinic(&clinics[i])
		uc.cacheSubject(ctx, subject)
		snapshot.Clinics = append(snapshot.Clinics, *uc.resolve(subject, now))
	}
	return snapshot, nil
}

func (uc *availabilityUsecase) PublishSnapshot(ctx context.Context) (*responses.SnapshotPublished, error) {
	requestID := utils.GetRequestID(ctx)

	if uc.Locker != nil {
		release, err := uc.acquireLeaderLock(ctx)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	snapshot, err := uc.BuildSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	bucket := uc.InternalConfig.Minio.SnapshotBucket
	objectName, err := uc.Storage.UploadJSON(ctx, bucket, utils.GenerateSnapshotObjectName(snapshot.GeneratedAt), data)
	if err != nil {
		uc.Log.Error("availabilityUsecase.PublishSnapshot error uploading snapshot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketKey, bucket),
			zap.Error(err),
		)
		return nil, err
	}

	published := &responses.SnapshotPublished{
		Bucket:      bucket,
		ObjectName:  objectName,
		GeneratedAt: snapshot.GeneratedAt,
		Count:       len(snapshot.Physicians) + len(snapshot.Clinics),
	}
	uc.Log.Info("availabilityUsecase.PublishSnapshot succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketKey, bucket),
		zap.String(constvars.LoggingObjectNameKey, objectName),
		zap.Int(constvars.LoggingCountKey, published.Count),
	)
	return published, nil
}

// acquireLeaderLock takes the snapshot lock and keeps it alive until the
// returned release function is called.
func (uc *availabilityUsecase) acquireLeaderLock(ctx context.Context) (func(), error) {
	ttl := uc.InternalConfig.SnapshotLockTTL()
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}

	acquired, token, err := uc.Locker.TryLock(ctx, constvars.RedisKeySnapshotLeaderLock, ttl)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrSnapshotAlreadyRunning(nil)
	}

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		tick := time.NewTicker(ttl / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := uc.Locker.Refresh(refreshCtx, constvars.RedisKeySnapshotLeaderLock, token, ttl); err != nil {
					uc.Log.Warn("availabilityUsecase.acquireLeaderLock failed to refresh leader lock", zap.Error(err))
				}
			}
		}
	}()

	return func() {
		cancelRefresh()
		<-done
		// The caller context may already be canceled; release on a fresh one.
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := uc.Locker.Unlock(unlockCtx, constvars.RedisKeySnapshotLeaderLock, token); err != nil {
			uc.Log.Warn("availabilityUsecase.acquireLeaderLock failed to release leader lock", zap.Error(err))
		}
	}, nil
}

// findSubject reads the subject from the schedule cache, falling back to the
// backend. Cache failures only cost a backend round trip.
func (uc *availabilityUsecase) findSubject(ctx context.Context, subjectType, subjectID string) (*responses.Subject, error) {
	requestID := utils.GetRequestID(ctx)
	key := scheduleCacheKey(subjectType, subjectID)

	if uc.cacheEnabled() {
		raw, err := uc.RedisRepository.Get(ctx, key)
		if err != nil {
			uc.Log.Warn("availabilityUsecase.findSubject error reading cache",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		} else if raw != "" {
			var subject responses.Subject
			if err := json.Unmarshal([]byte(raw), &subject); err == nil {
				uc.Log.Debug("availabilityUsecase.findSubject cache hit",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingRedisKey, key),
					zap.Bool(constvars.LoggingCacheHitKey, true),
				)
				return &subject, nil
			}
			uc.Log.Warn("availabilityUsecase.findSubject dropping undecodable cache entry",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
			)
		}
	}

	subject, err := uc.fetchSubject(ctx, subjectType, subjectID)
	if err != nil {
		return nil, err
	}
	uc.cacheSubject(ctx, subject)
	return subject, nil
}

func (uc *availabilityUsecase) fetchSubject(ctx context.Context, subjectType, subjectID string) (*responses.Subject, error) {
	switch subjectType {
	case constvars.SubjectTypePhysician:
		physician, err := uc.PhysicianBackend.FindPhysicianByID(ctx, subjectID)
		if err != nil {
			return nil, err
		}
		return responses.SubjectFromPhysician(physician), nil
	case constvars.SubjectTypeClinic:
		clinic, err := uc.ClinicBackend.FindClinicByID(ctx, subjectID)
		if err != nil {
			return nil, err
		}
		return responses.SubjectFromClinic(clinic), nil
	default:
		return nil, exceptions.ErrUnsupportedSubjectType(fmt.Errorf("subject %s", subjectID), subjectType)
	}
}

func (uc *availabilityUsecase) cacheSubject(ctx context.Context, subject *responses.Subject) {
	if !uc.cacheEnabled() {
		return
	}
	key := scheduleCacheKey(subject.Type, subject.ID)
	if err := uc.RedisRepository.Set(ctx, key, subject, uc.InternalConfig.ScheduleCacheTTL()); err != nil {
		uc.Log.Warn("availabilityUsecase.cacheSubject error writing cache",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
}

func (uc *availabilityUsecase) publish(ctx context.Context, result *responses.Availability) error {
	if uc.Publisher == nil || !uc.InternalConfig.App.AvailabilityEventsPublished {
		return nil
	}
	return uc.Publisher.PublishAvailabilityChanged(ctx, &responses.AvailabilityChangedEvent{
		Event:       constvars.EventAvailabilityChanged,
		SubjectType: result.SubjectType,
		SubjectID:   result.SubjectID,
		Status:      result.Status,
		OccurredAt:  result.ResolvedAt,
	})
}

func (uc *availabilityUsecase) resolve(subject *responses.Subject, now time.Time) *responses.Availability {
	return &responses.Availability{
		SubjectType: subject.Type,
		SubjectID:   subject.ID,
		DisplayName: subject.DisplayName,
		Status:      uc.Resolver.At(now, subject.WorkingHours),
		ResolvedAt:  now,
	}
}

func (uc *availabilityUsecase) cacheEnabled() bool {
	return uc.RedisRepository != nil && uc.InternalConfig.ScheduleCacheTTL() > 0
}

func (uc *availabilityUsecase) batchConcurrency() int {
	if uc.InternalConfig.App.BatchConcurrency > 0 {
		return uc.InternalConfig.App.BatchConcurrency
	}
	return defaultBatchConcurrency
}

func (uc *availabilityUsecase) names() availability.WeekdayNames {
	if uc.Resolver.Names != (availability.WeekdayNames{}) {
		return uc.Resolver.Names
	}
	return availability.French
}

func (uc *availabilityUsecase) policy() availability.OpeningPolicy {
	if uc.Resolver.Policy != "" {
		return uc.Resolver.Policy
	}
	return availability.FirstListed
}

func scheduleCacheKey(subjectType, subjectID string) string {
	return constvars.RedisKeyScheduleCachePrefix + subjectType + ":" + subjectID
}

func localeOf(names availability.WeekdayNames) string {
	if names == availability.English {
		return constvars.WeekdayLocaleEnglish
	}
	return constvars.WeekdayLocaleFrench
}
