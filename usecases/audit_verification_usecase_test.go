package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/veridoc/veridoc-backend/mocks"
	"github.com/veridoc/veridoc-backend/models"
)

type AuditVerificationUsecaseTestSuite struct {
	suite.Suite
	executorFactory        *mocks.ExecutorFactory
	executor               *mocks.Executor
	eventRepository        *mocks.AuditEventRepository
	rootRepository         *mocks.AuditRootRepository
	verificationRepository *mocks.AuditVerificationRepository

	tenantId   uuid.UUID
	verifiedBy uuid.UUID
	day        time.Time
}

func (suite *AuditVerificationUsecaseTestSuite) SetupTest() {
	suite.executorFactory = new(mocks.ExecutorFactory)
	suite.executor = new(mocks.Executor)
	suite.eventRepository = new(mocks.AuditEventRepository)
	suite.rootRepository = new(mocks.AuditRootRepository)
	suite.verificationRepository = new(mocks.AuditVerificationRepository)

	suite.tenantId = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	suite.verifiedBy = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	suite.day = time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)

	suite.executorFactory.On("NewExecutor").Return(suite.executor).Maybe()
}

func (suite *AuditVerificationUsecaseTestSuite) makeUsecase() AuditVerificationUsecase {
	return AuditVerificationUsecase{
		executorFactory:        suite.executorFactory,
		eventRepository:        suite.eventRepository,
		rootRepository:         suite.rootRepository,
		verificationRepository: suite.verificationRepository,
	}
}

func (suite *AuditVerificationUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.eventRepository.AssertExpectations(t)
	suite.rootRepository.AssertExpectations(t)
	suite.verificationRepository.AssertExpectations(t)
}

// buildChain appends count hash-valid events to the tenant chain, one minute
// apart starting at the given time.
func (suite *AuditVerificationUsecaseTestSuite) buildChain(
	start time.Time, firstSequence int64, count int, previousHash string,
) []models.AuditEvent {
	events := make([]models.AuditEvent, 0, count)
	for i := 0; i < count; i++ {
		event := models.AuditEvent{
			SequenceNumber: firstSequence + int64(i),
			EventType:      "document.updated",
			EntityType:     "document",
			EntityId:       fmt.Sprintf("doc-%d", i),
			ActorId:        suite.verifiedBy,
			TenantId:       suite.tenantId,
			NewValues:      json.RawMessage(fmt.Sprintf(`{"revision": %d}`, i)),
			PreviousHash:   previousHash,
			CreatedAt:      start.Add(time.Duration(i) * time.Minute),
		}
		hash, err := models.ComputeEventHash(event)
		suite.Require().NoError(err)
		event.EventHash = hash

		events = append(events, event)
		previousHash = hash
	}
	return events
}

func (suite *AuditVerificationUsecaseTestSuite) expectEventsAndRoots(
	events []models.AuditEvent, roots []models.AuditRoot,
) {
	until := suite.day.AddDate(0, 0, 1)
	suite.eventRepository.On("ListAuditEventsBySequenceRange", mock.Anything, suite.executor,
		suite.tenantId, suite.day, until, int64(0), verificationPageSize).
		Return(events, nil)
	suite.rootRepository.On("ListAuditRoots", mock.Anything, suite.executor,
		suite.tenantId, &suite.day, &suite.day).Return(roots, nil)
}

func (suite *AuditVerificationUsecaseTestSuite) expectVerificationStored(
	result models.VerificationResult,
) {
	suite.verificationRepository.On("CreateAuditVerification", mock.Anything, suite.executor,
		mock.MatchedBy(func(verification models.AuditVerification) bool {
			return verification.Result == result
		})).Return(nil)
}

func (suite *AuditVerificationUsecaseTestSuite) eventHashes(events []models.AuditEvent) []string {
	hashes := make([]string, len(events))
	for i, event := range events {
		hashes[i] = event.EventHash
	}
	return hashes
}

func (suite *AuditVerificationUsecaseTestSuite) Test_Verify_IntactChainPasses() {
	ctx := context.Background()
	events := suite.buildChain(suite.day.Add(10*time.Hour), 1, 5, models.GenesisHash)
	roots := []models.AuditRoot{{
		TenantId:   suite.tenantId,
		Date:       suite.day,
		MerkleRoot: models.MerkleRoot(suite.eventHashes(events)),
	}}

	suite.expectEventsAndRoots(events, roots)
	suite.expectVerificationStored(models.VerificationPassed)

	verification, err := suite.makeUsecase().Verify(ctx,
		suite.tenantId, suite.day, suite.day, suite.verifiedBy)

	suite.NoError(err)
	suite.Equal(models.VerificationPassed, verification.Result)
	suite.Empty(verification.Findings)
	suite.AssertExpectations()
}

func (suite *AuditVerificationUsecaseTestSuite) Test_Verify_TamperedEventIsOneHashError() {
	ctx := context.Background()
	events := suite.buildChain(suite.day.Add(10*time.Hour), 1, 5, models.GenesisHash)
	roots := []models.AuditRoot{{
		TenantId:   suite.tenantId,
		Date:       suite.day,
		MerkleRoot: models.MerkleRoot(suite.eventHashes(events)),
	}}

	// the stored hash still matches what was committed, only the row content
	// changed afterwards
	events[2].NewValues = json.RawMessage(`{"revision": 999}`)

	suite.expectEventsAndRoots(events, roots)
	suite.expectVerificationStored(models.VerificationFailed)

	verification, err := suite.makeUsecase().Verify(ctx,
		suite.tenantId, suite.day, suite.day, suite.verifiedBy)

	suite.NoError(err)
	suite.Equal(models.VerificationFailed, verification.Result)
	suite.Require().Len(verification.Findings, 1)

	finding := verification.Findings[0]
	suite.Equal(models.AuditFindingHashError, finding.Kind)
	suite.Equal(events[2].SequenceNumber, finding.SequenceNumber)
	suite.Equal(events[2].EventHash, finding.Expected)
	suite.NotEqual(finding.Expected, finding.Actual)
	suite.AssertExpectations()
}

func (suite *AuditVerificationUsecaseTestSuite) Test_Verify_DeletedEventIsChainError() {
	ctx := context.Background()
	events := suite.buildChain(suite.day.Add(10*time.Hour), 1, 4, models.GenesisHash)
	deleted := events[1]
	survivors := []models.AuditEvent{events[0], events[2], events[3]}

	suite.expectEventsAndRoots(survivors, nil)
	suite.expectVerificationStored(models.VerificationFailed)

	verification, err := suite.makeUsecase().Verify(ctx,
		suite.tenantId, suite.day, suite.day, suite.verifiedBy)

	suite.NoError(err)
	suite.Require().Len(verification.Findings, 1)

	finding := verification.Findings[0]
	suite.Equal(models.AuditFindingChainError, finding.Kind)
	suite.Equal(events[2].SequenceNumber, finding.SequenceNumber)
	suite.Equal(events[0].EventHash, finding.Expected)
	suite.Equal(deleted.EventHash, finding.Actual)
	suite.AssertExpectations()
}

func (suite *AuditVerificationUsecaseTestSuite) Test_Verify_ForgedRootIsMerkleError() {
	ctx := context.Background()
	events := suite.buildChain(suite.day.Add(10*time.Hour), 1, 3, models.GenesisHash)
	roots := []models.AuditRoot{{
		TenantId:   suite.tenantId,
		Date:       suite.day,
		MerkleRoot: "0000000000000000000000000000000000000000000000000000000000000bad",
	}}

	suite.expectEventsAndRoots(events, roots)
	suite.expectVerificationStored(models.VerificationFailed)

	verification, err := suite.makeUsecase().Verify(ctx,
		suite.tenantId, suite.day, suite.day, suite.verifiedBy)

	suite.NoError(err)
	suite.Require().Len(verification.Findings, 1)

	finding := verification.Findings[0]
	suite.Equal(models.AuditFindingMerkleError, finding.Kind)
	suite.Equal(roots[0].MerkleRoot, finding.Expected)
	suite.Equal(models.MerkleRoot(suite.eventHashes(events)), finding.Actual)
	suite.AssertExpectations()
}

func (suite *AuditVerificationUsecaseTestSuite) Test_Verify_RootWithoutEventsIsMerkleError() {
	ctx := context.Background()
	roots := []models.AuditRoot{{
		TenantId:   suite.tenantId,
		Date:       suite.day,
		MerkleRoot: "a-root-whose-events-are-gone",
	}}

	suite.expectEventsAndRoots([]models.AuditEvent{}, roots)
	suite.expectVerificationStored(models.VerificationFailed)

	verification, err := suite.makeUsecase().Verify(ctx,
		suite.tenantId, suite.day, suite.day, suite.verifiedBy)

	suite.NoError(err)
	suite.Require().Len(verification.Findings, 1)
	suite.Equal(models.AuditFindingMerkleError, verification.Findings[0].Kind)
	suite.Equal("", verification.Findings[0].Actual)
	suite.AssertExpectations()
}

func (suite *AuditVerificationUsecaseTestSuite) Test_Verify_DayWithoutRootIsOnlyChainChecked() {
	ctx := context.Background()
	events := suite.buildChain(suite.day.Add(10*time.Hour), 1, 3, models.GenesisHash)

	suite.expectEventsAndRoots(events, nil)
	suite.expectVerificationStored(models.VerificationPassed)

	verification, err := suite.makeUsecase().Verify(ctx,
		suite.tenantId, suite.day, suite.day, suite.verifiedBy)

	suite.NoError(err)
	suite.Equal(models.VerificationPassed, verification.Result)
	suite.Empty(verification.Findings)
	suite.AssertExpectations()
}

func (suite *AuditVerificationUsecaseTestSuite) Test_Verify_EmptyRangePasses() {
	ctx := context.Background()

	suite.expectEventsAndRoots([]models.AuditEvent{}, nil)
	suite.expectVerificationStored(models.VerificationPassed)

	verification, err := suite.makeUsecase().Verify(ctx,
		suite.tenantId, suite.day, suite.day, suite.verifiedBy)

	suite.NoError(err)
	suite.Equal(models.VerificationPassed, verification.Result)
	suite.Empty(verification.Findings)
	suite.AssertExpectations()
}

func (suite *AuditVerificationUsecaseTestSuite) Test_Verify_MultiDayRangeChecksEachRoot() {
	ctx := context.Background()
	nextDay := suite.day.AddDate(0, 0, 1)

	dayOne := suite.buildChain(suite.day.Add(9*time.Hour), 1, 2, models.GenesisHash)
	dayTwo := suite.buildChain(nextDay.Add(9*time.Hour), 3, 2, dayOne[1].EventHash)
	events := append(append([]models.AuditEvent{}, dayOne...), dayTwo...)

	roots := []models.AuditRoot{
		{TenantId: suite.tenantId, Date: suite.day, MerkleRoot: models.MerkleRoot(suite.eventHashes(dayOne))},
		{TenantId: suite.tenantId, Date: nextDay, MerkleRoot: models.MerkleRoot(suite.eventHashes(dayTwo))},
	}

	until := nextDay.AddDate(0, 0, 1)
	suite.eventRepository.On("ListAuditEventsBySequenceRange", mock.Anything, suite.executor,
		suite.tenantId, suite.day, until, int64(0), verificationPageSize).
		Return(events, nil)
	suite.rootRepository.On("ListAuditRoots", mock.Anything, suite.executor,
		suite.tenantId, &suite.day, &nextDay).Return(roots, nil)
	suite.expectVerificationStored(models.VerificationPassed)

	verification, err := suite.makeUsecase().Verify(ctx,
		suite.tenantId, suite.day, nextDay, suite.verifiedBy)

	suite.NoError(err)
	suite.Equal(models.VerificationPassed, verification.Result)
	suite.Empty(verification.Findings)
	suite.AssertExpectations()
}

func (suite *AuditVerificationUsecaseTestSuite) Test_Verify_PaginatesThroughLargeRanges() {
	ctx := context.Background()
	events := suite.buildChain(suite.day.Add(time.Hour), 1, verificationPageSize+3, models.GenesisHash)
	firstPage := events[:verificationPageSize]
	secondPage := events[verificationPageSize:]

	until := suite.day.AddDate(0, 0, 1)
	suite.eventRepository.On("ListAuditEventsBySequenceRange", mock.Anything, suite.executor,
		suite.tenantId, suite.day, until, int64(0), verificationPageSize).
		Return(firstPage, nil)
	suite.eventRepository.On("ListAuditEventsBySequenceRange", mock.Anything, suite.executor,
		suite.tenantId, suite.day, until, firstPage[len(firstPage)-1].SequenceNumber, verificationPageSize).
		Return(secondPage, nil)
	suite.rootRepository.On("ListAuditRoots", mock.Anything, suite.executor,
		suite.tenantId, &suite.day, &suite.day).Return(nil, nil)
	suite.expectVerificationStored(models.VerificationPassed)

	verification, err := suite.makeUsecase().Verify(ctx,
		suite.tenantId, suite.day, suite.day, suite.verifiedBy)

	suite.NoError(err)
	suite.Equal(models.VerificationPassed, verification.Result)
	suite.Empty(verification.Findings)
	suite.AssertExpectations()
}

func (suite *AuditVerificationUsecaseTestSuite) Test_Verify_ValidatesParameters() {
	ctx := context.Background()
	usecase := suite.makeUsecase()

	_, err := usecase.Verify(ctx, uuid.Nil, suite.day, suite.day, suite.verifiedBy)
	suite.True(errors.Is(err, models.BadParameterError))

	_, err = usecase.Verify(ctx, suite.tenantId, suite.day, suite.day, uuid.Nil)
	suite.True(errors.Is(err, models.BadParameterError))

	_, err = usecase.Verify(ctx, suite.tenantId, suite.day, suite.day.AddDate(0, 0, -1), suite.verifiedBy)
	suite.True(errors.Is(err, models.BadParameterError))

	suite.AssertExpectations()
}

func (suite *AuditVerificationUsecaseTestSuite) Test_ListVerifications() {
	ctx := context.Background()
	stored := []models.AuditVerification{{
		Id:       uuid.New(),
		TenantId: suite.tenantId,
		Result:   models.VerificationPassed,
	}}

	suite.verificationRepository.On("ListAuditVerifications", mock.Anything, suite.executor,
		suite.tenantId).Return(stored, nil)

	got, err := suite.makeUsecase().ListVerifications(ctx, suite.tenantId)

	suite.NoError(err)
	suite.Equal(stored, got)
	suite.AssertExpectations()
}

func TestAuditVerificationUsecase(t *testing.T) {
	suite.Run(t, new(AuditVerificationUsecaseTestSuite))
}
