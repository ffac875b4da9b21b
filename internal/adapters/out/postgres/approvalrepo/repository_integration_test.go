package approvalrepo_test

import (
	"context"
	"testing"
	"time"

	"procurement/internal/adapters/out/postgres/approvalrepo"
	"procurement/internal/core/domain/model/approval"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// ApprovalRepositoryIntegrationTestSuite provides integration tests for
// ApprovalRepository using PostgreSQL containers, with particular attention
// to the guarded update that serializes racing resolvers.
type ApprovalRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *approvalrepo.GormApprovalRepository
	tracker    *MockAggregateTracker
}

func (suite *ApprovalRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&approvalrepo.ApprovalDTO{}))
}

func (suite *ApprovalRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE purchase_approvals").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = approvalrepo.NewGormApprovalRepository(suite.db, suite.tracker)
}

func (suite *ApprovalRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ApprovalRepositoryIntegrationTestSuite) TestAddBatch_PersistsWholeChain() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	chain := suite.createTestChain(orderID)
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(len(chain))

	err := suite.repository.AddBatch(ctx, chain)
	suite.Require().NoError(err)

	history, err := suite.repository.FindByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(history, 3)

	// Ordered by sequence
	suite.Equal("部门经理审批", history[0].Level())
	suite.Equal("财务审批", history[1].Level())
	suite.Equal("总经理审批", history[2].Level())
	for i, record := range history {
		suite.Equal(i+1, record.Sequence())
		suite.Equal(approval.Pending, record.Status())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ApprovalRepositoryIntegrationTestSuite) TestAddBatch_EmptyChain_NoOp() {
	ctx := context.Background()

	err := suite.repository.AddBatch(ctx, nil)
	suite.Require().NoError(err)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ApprovalRepositoryIntegrationTestSuite) TestGet_RoundTripsOptionalFields() {
	ctx := context.Background()

	record, err := approval.NewApproval(kernel.NewUUID(), kernel.NewUUID(), "总经理审批", 3)
	suite.Require().NoError(err)
	record.SetApproverRole("ROLE_DIRECTOR")
	record.SetRequireCountersign(true)
	record.AddAttachment("报价单", "files/quote-001.pdf")
	// No amount limit: the director level approves any amount

	suite.tracker.On("TrackAggregate", record.ID(), record).Once()
	suite.Require().NoError(suite.repository.Add(ctx, record))

	stored, err := suite.repository.Get(ctx, record.ID())
	suite.Require().NoError(err)
	suite.Equal("ROLE_DIRECTOR", stored.ApproverRole())
	suite.Equal("", stored.AmountLimit())
	suite.True(stored.RequireCountersign())
	suite.Equal("files/quote-001.pdf", stored.Attachments()["报价单"])

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ApprovalRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFoundError() {
	ctx := context.Background()

	stored, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Nil(stored)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ApprovalRepositoryIntegrationTestSuite) TestUpdate_PendingRecord_PersistsResolution() {
	ctx := context.Background()
	now := time.Now().Truncate(time.Microsecond)

	record := suite.addPendingRecord(ctx)

	suite.True(record.Resolve("manager-1", true, "同意", now))

	suite.tracker.On("TrackAggregate", record.ID(), record).Once()
	err := suite.repository.Update(ctx, record)
	suite.Require().NoError(err)

	stored, err := suite.repository.Get(ctx, record.ID())
	suite.Require().NoError(err)
	suite.Equal(approval.Approved, stored.Status())
	suite.Equal("manager-1", stored.ApproverID())
	suite.Equal("同意", stored.Comment())
	suite.Require().NotNil(stored.ApproveTime())
	suite.WithinDuration(now, *stored.ApproveTime(), time.Second)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ApprovalRepositoryIntegrationTestSuite) TestUpdate_AlreadyResolved_ReturnsGuardError() {
	ctx := context.Background()
	now := time.Now()

	record := suite.addPendingRecord(ctx)

	// Two resolvers load the same pending row
	winner, err := suite.repository.Get(ctx, record.ID())
	suite.Require().NoError(err)
	loser, err := suite.repository.Get(ctx, record.ID())
	suite.Require().NoError(err)

	suite.True(winner.Resolve("first-approver", true, "approve", now))
	suite.tracker.On("TrackAggregate", winner.ID(), winner).Once()
	suite.Require().NoError(suite.repository.Update(ctx, winner))

	suite.True(loser.Resolve("second-approver", false, "reject", now))
	err = suite.repository.Update(ctx, loser)
	suite.Require().ErrorIs(err, ports.ErrApprovalAlreadyResolved)

	// First decision survives
	stored, err := suite.repository.Get(ctx, record.ID())
	suite.Require().NoError(err)
	suite.Equal(approval.Approved, stored.Status())
	suite.Equal("first-approver", stored.ApproverID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ApprovalRepositoryIntegrationTestSuite) TestUpdate_NonExistent_ReturnsNotFoundError() {
	ctx := context.Background()

	record, err := approval.NewApproval(kernel.NewUUID(), kernel.NewUUID(), "部门经理审批", 1)
	suite.Require().NoError(err)
	suite.True(record.Resolve("manager-1", true, "ok", time.Now()))

	err = suite.repository.Update(ctx, record)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ApprovalRepositoryIntegrationTestSuite) TestFindPendingApprovals_FiltersByApprover() {
	ctx := context.Background()
	now := time.Now()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(4)

	chain := suite.createTestChain(kernel.NewUUID())
	suite.Require().NoError(suite.repository.AddBatch(ctx, chain))

	// Resolve the first level so it drops out of the pending set
	suite.True(chain[0].Resolve("manager-1", true, "ok", now))
	suite.Require().NoError(suite.repository.Update(ctx, chain[0]))

	all, err := suite.repository.FindPendingApprovals(ctx, "")
	suite.Require().NoError(err)
	suite.Len(all, 2)

	// Role filter matches the finance level only
	finance, err := suite.repository.FindPendingApprovals(ctx, "ROLE_FINANCE")
	suite.Require().NoError(err)
	suite.Require().Len(finance, 1)
	suite.Equal("财务审批", finance[0].Level())

	// Unknown approver matches nothing
	none, err := suite.repository.FindPendingApprovals(ctx, "nobody")
	suite.Require().NoError(err)
	suite.Empty(none)

	suite.tracker.AssertExpectations(suite.T())
}

// createTestChain builds the three level chain used for large orders.
func (suite *ApprovalRepositoryIntegrationTestSuite) createTestChain(orderID kernel.UUID) []*approval.Approval {
	manager, err := approval.NewApproval(kernel.NewUUID(), orderID, "部门经理审批", 1)
	suite.Require().NoError(err)
	manager.SetApproverRole("ROLE_MANAGER")

	finance, err := approval.NewApproval(kernel.NewUUID(), orderID, "财务审批", 2)
	suite.Require().NoError(err)
	finance.SetApproverRole("ROLE_FINANCE")

	director, err := approval.NewApproval(kernel.NewUUID(), orderID, "总经理审批", 3)
	suite.Require().NoError(err)
	director.SetApproverRole("ROLE_DIRECTOR")

	return []*approval.Approval{manager, finance, director}
}

// addPendingRecord persists one pending first-level approval.
func (suite *ApprovalRepositoryIntegrationTestSuite) addPendingRecord(ctx context.Context) *approval.Approval {
	record, err := approval.NewApproval(kernel.NewUUID(), kernel.NewUUID(), "部门经理审批", 1)
	suite.Require().NoError(err)
	record.SetApproverRole("ROLE_MANAGER")
	record.SetAmountLimit("10000")

	suite.tracker.On("TrackAggregate", record.ID(), record).Once()
	suite.Require().NoError(suite.repository.Add(ctx, record))
	return record
}

func TestApprovalRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalRepositoryIntegrationTestSuite))
}
