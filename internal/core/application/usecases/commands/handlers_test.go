package commands_test

import (
	"errors"
	"testing"
	"time"

	"connectfood/internal/adapters/out/memory"
	"connectfood/internal/core/application/arbiter"
	"connectfood/internal/core/application/usecases/commands"
	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/core/domain/services"
	"connectfood/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateDonationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	donor := newActor(t, kernel.Donor)
	cmd, err := commands.NewCreateDonationCommand(donor, validDetails(), testNow.Add(4*time.Hour))
	require.NoError(t, err)

	repo := new(MockDonationRepository)
	announcer := new(MockAnnouncer)
	isNew := mock.MatchedBy(func(d *donation.Donation) bool {
		return d.Status() == donation.Pending && d.Version() == 0 && d.DonorID().IsEqual(donor.ID())
	})

	mock.InOrder(
		repo.On("Add", ctx, isNew).Return(nil).Once(),
		announcer.On("Created", ctx, isNew, donor).Return().Once(),
	)

	handler := commands.NewCreateDonationCommandHandler(repo, announcer, fixedClock(testNow))
	d, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, testNow, d.CreatedAt())
	repo.AssertExpectations(t)
	announcer.AssertExpectations(t)
}

func TestCreateDonationCommandHandler_Handle_OnlyDonors(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateDonationCommand(newActor(t, kernel.NGO), validDetails(), testNow.Add(time.Hour))
	require.NoError(t, err)

	repo := new(MockDonationRepository)
	announcer := new(MockAnnouncer)

	handler := commands.NewCreateDonationCommandHandler(repo, announcer, fixedClock(testNow))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrUnauthorized)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	announcer.AssertNotCalled(t, "Created", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateDonationCommandHandler_Handle_RepositoryError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateDonationCommand(newActor(t, kernel.Donor), validDetails(), testNow.Add(time.Hour))
	require.NoError(t, err)

	storeErr := errors.New("database is down")
	repo := new(MockDonationRepository)
	repo.On("Add", ctx, mock.Anything).Return(storeErr).Once()
	announcer := new(MockAnnouncer)

	handler := commands.NewCreateDonationCommandHandler(repo, announcer, fixedClock(testNow))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, storeErr)
	announcer.AssertNotCalled(t, "Created", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateDonationCommandHandler_Handle_NotConstructed(t *testing.T) {
	handler := commands.NewCreateDonationCommandHandler(new(MockDonationRepository), new(MockAnnouncer), fixedClock(testNow))

	_, err := handler.Handle(t.Context(), commands.CreateDonationCommand{})

	require.ErrorIs(t, err, commands.ErrCreateDonationCommandIsNotConstructed)
}

func TestClaimDonationCommandHandler_Handle_AnnouncesAfterCommit(t *testing.T) {
	ctx := t.Context()
	ngo := newActor(t, kernel.NGO)
	d := newPending(t, kernel.NewUUID(), testNow.Add(time.Hour))
	require.NoError(t, d.Claim(ngo, testNow))
	res := arbiter.Result{Donation: d, From: donation.Pending, Applied: true}

	cmd, err := commands.NewClaimDonationCommand(ngo, d.ID())
	require.NoError(t, err)

	arb := new(MockArbiter)
	announcer := new(MockAnnouncer)
	mock.InOrder(
		arb.On("Apply", ctx, d.ID(), donation.Claim, mock.Anything).Return(res, nil).Once(),
		announcer.On("Transitioned", ctx, res, donation.Claim, ngo, "").Return().Once(),
	)

	handler := commands.NewClaimDonationCommandHandler(arb, announcer)
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Same(t, d, got)
	arb.AssertExpectations(t)
	announcer.AssertExpectations(t)
}

func TestClaimDonationCommandHandler_Handle_PropagatesRejection(t *testing.T) {
	ctx := t.Context()
	ngo := newActor(t, kernel.NGO)
	donationID := kernel.NewUUID()
	cmd, err := commands.NewClaimDonationCommand(ngo, donationID)
	require.NoError(t, err)

	arb := new(MockArbiter)
	announcer := new(MockAnnouncer)
	arb.On("Apply", ctx, donationID, donation.Claim, mock.Anything).
		Return(arbiter.Result{}, errs.NewConflictError("busy")).Once()
	announcer.On("Transitioned", ctx, arbiter.Result{}, donation.Claim, ngo, "").Return().Once()

	handler := commands.NewClaimDonationCommandHandler(arb, announcer)
	got, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Nil(t, got)
	arb.AssertExpectations(t)
}

func TestConfirmPickupCommandHandler_Handle_DecideRejectsIncompleteEvidence(t *testing.T) {
	ctx := t.Context()
	ngo := newActor(t, kernel.NGO)
	courier := newActor(t, kernel.Courier)
	d := newPending(t, kernel.NewUUID(), testNow.Add(time.Hour))
	require.NoError(t, d.Claim(ngo, testNow))
	require.NoError(t, d.AssignCourier(ngo, courier.ID(), testNow))

	payload := services.PickupPayload{CheckedItems: []string{"soup-tomato"}, PhotoRef: "p.jpg"}
	cmd, err := commands.NewConfirmPickupCommand(courier, d.ID(), payload)
	require.NoError(t, err)

	var decide arbiter.Decide
	arb := new(MockArbiter)
	arb.On("Apply", ctx, d.ID(), donation.ConfirmPickup, mock.Anything).
		Run(func(args mock.Arguments) { decide = args.Get(3).(arbiter.Decide) }).
		Return(arbiter.Result{}, errs.NewIncompleteVerificationError([]string{"checkedItems"})).Once()
	announcer := new(MockAnnouncer)
	announcer.On("Transitioned", ctx, mock.Anything, donation.ConfirmPickup, courier, "").Return().Once()

	handler := commands.NewConfirmPickupCommandHandler(arb, announcer, services.NewVerificationGate())
	_, err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrIncompleteVerification)

	require.NotNil(t, decide)
	candidate := d.Clone()
	outcome, err := decide(candidate, testNow)

	require.ErrorIs(t, err, errs.ErrIncompleteVerification)
	assert.Zero(t, outcome)
	assert.Equal(t, donation.Assigned, candidate.Status())
	assert.Equal(t, d.Version(), candidate.Version())
}

func TestConfirmationHandlers_CheckStatusAndCourierBeforeEvidence(t *testing.T) {
	ngo := newActor(t, kernel.NGO)
	courier := newActor(t, kernel.Courier)
	otherCourier := newActor(t, kernel.Courier)

	assigned := func(t *testing.T) *donation.Donation {
		d := newPending(t, kernel.NewUUID(), testNow.Add(time.Hour))
		require.NoError(t, d.Claim(ngo, testNow))
		require.NoError(t, d.AssignCourier(ngo, courier.ID(), testNow))
		return d
	}
	inTransit := func(t *testing.T) *donation.Donation {
		d := assigned(t)
		require.NoError(t, d.ConfirmPickup(courier, donation.PickupVerification{VerifiedBy: courier.ID(), VerifiedAt: testNow}, testNow))
		require.NoError(t, d.DepartForDropoff(courier, testNow))
		return d
	}
	canceled := func(t *testing.T) *donation.Donation {
		d := assigned(t)
		require.NoError(t, d.Cancel(ngo, "", testNow))
		return d
	}

	pickup := func(t *testing.T, arb *arbiter.Arbiter, actor kernel.Actor, id kernel.UUID) error {
		cmd, err := commands.NewConfirmPickupCommand(actor, id, services.PickupPayload{})
		require.NoError(t, err)
		_, err = commands.NewConfirmPickupCommandHandler(arb, &recordingAnnouncer{}, services.NewVerificationGate()).Handle(t.Context(), cmd)
		return err
	}
	delivery := func(t *testing.T, arb *arbiter.Arbiter, actor kernel.Actor, id kernel.UUID) error {
		cmd, err := commands.NewConfirmDeliveryCommand(actor, id, services.DeliveryPayload{})
		require.NoError(t, err)
		_, err = commands.NewConfirmDeliveryCommandHandler(arb, &recordingAnnouncer{}, services.NewVerificationGate()).Handle(t.Context(), cmd)
		return err
	}

	testCases := []struct {
		name    string
		setup   func(t *testing.T) *donation.Donation
		actor   kernel.Actor
		confirm func(t *testing.T, arb *arbiter.Arbiter, actor kernel.Actor, id kernel.UUID) error
		want    error
	}{
		{"pickup on canceled donation", canceled, courier, pickup, errs.ErrInvalidTransition},
		{"pickup by another courier", assigned, otherCourier, pickup, errs.ErrUnauthorized},
		{"delivery on canceled donation", canceled, courier, delivery, errs.ErrInvalidTransition},
		{"delivery by another courier", inTransit, otherCourier, delivery, errs.ErrUnauthorized},
		{"pickup with missing evidence", assigned, courier, pickup, errs.ErrIncompleteVerification},
		{"delivery with missing evidence", inTransit, courier, delivery, errs.ErrIncompleteVerification},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.NewDonationStore()
			arb, err := arbiter.New(store, fixedClock(testNow))
			require.NoError(t, err)
			d := tc.setup(t)
			require.NoError(t, store.Add(t.Context(), d))

			err = tc.confirm(t, arb, tc.actor, d.ID())

			require.ErrorIs(t, err, tc.want)
			stored, err := store.Get(t.Context(), d.ID())
			require.NoError(t, err)
			assert.Equal(t, d.Version(), stored.Version())
		})
	}
}

func TestReportIssueCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	ngo := newActor(t, kernel.NGO)
	courier := newActor(t, kernel.Courier)
	d := newPending(t, kernel.NewUUID(), testNow.Add(time.Hour))
	require.NoError(t, d.Claim(ngo, testNow))
	require.NoError(t, d.AssignCourier(ngo, courier.ID(), testNow))

	t.Run("stores and announces report", func(t *testing.T) {
		cmd, err := commands.NewReportIssueCommand(courier, d.ID(), "donor not answering")
		require.NoError(t, err)

		donations := new(MockDonationRepository)
		issues := new(MockIssueRepository)
		announcer := new(MockAnnouncer)
		isReport := mock.MatchedBy(func(r donation.IssueReport) bool {
			return r.DonationID.IsEqual(d.ID()) && r.Description == "donor not answering" && len(r.ID) == 26
		})

		mock.InOrder(
			donations.On("Get", ctx, d.ID()).Return(d, nil).Once(),
			issues.On("Add", ctx, isReport).Return(nil).Once(),
			announcer.On("IssueReported", ctx, d, isReport, courier).Return().Once(),
		)

		handler := commands.NewReportIssueCommandHandler(donations, issues, announcer, fixedClock(testNow))
		report, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, testNow, report.ReportedAt)
		donations.AssertExpectations(t)
		issues.AssertExpectations(t)
		announcer.AssertExpectations(t)
	})

	t.Run("rejects unrelated courier", func(t *testing.T) {
		cmd, err := commands.NewReportIssueCommand(newActor(t, kernel.Courier), d.ID(), "lost")
		require.NoError(t, err)

		donations := new(MockDonationRepository)
		donations.On("Get", ctx, d.ID()).Return(d, nil).Once()
		issues := new(MockIssueRepository)

		handler := commands.NewReportIssueCommandHandler(donations, issues, new(MockAnnouncer), fixedClock(testNow))
		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		issues.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("missing donation", func(t *testing.T) {
		missing := kernel.NewUUID()
		cmd, err := commands.NewReportIssueCommand(courier, missing, "lost")
		require.NoError(t, err)

		donations := new(MockDonationRepository)
		donations.On("Get", ctx, missing).Return(nil, errs.NewObjectNotFoundError("donation", missing)).Once()

		handler := commands.NewReportIssueCommandHandler(
			donations, new(MockIssueRepository), new(MockAnnouncer), fixedClock(testNow))
		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
