package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrmohammed249/daftari/internal/apperrors"
	"github.com/amrmohammed249/daftari/internal/dto"
)

func TestCreatePartySequenceAndOpeningBalance(t *testing.T) {
	e := testEngine(t)

	c, err := e.CreateCustomer(context.Background(), testActor, dto.CreatePartyRequest{
		Name: "Alice", Phone: "0100000000", OpeningBalance: num("250"),
	})
	require.NoError(t, err)
	assert.Equal(t, "CUS-000001", c.ID)
	assert.True(t, c.Balance.Equal(num("250")))

	s, err := e.CreateSupplier(context.Background(), testActor, dto.CreatePartyRequest{Name: "Bob Inc"})
	require.NoError(t, err)
	assert.Equal(t, "SUP-000001", s.ID)
	assert.True(t, s.Balance.IsZero())
}

func TestDuplicatePartyNames(t *testing.T) {
	e := testEngine(t)
	seedCustomer(t, e, "Alice")

	_, err := e.CreateCustomer(context.Background(), testActor, dto.CreatePartyRequest{Name: "alice"})
	require.ErrorIs(t, err, apperrors.ErrDuplicate)

	// the same name on the supplier side is a different namespace
	_, err = e.CreateSupplier(context.Background(), testActor, dto.CreatePartyRequest{Name: "Alice"})
	require.NoError(t, err)
}

func TestUpdateCustomerPatchesFields(t *testing.T) {
	e := testEngine(t)
	c := seedCustomer(t, e, "Alice")

	phone := "0111111111"
	updated, err := e.UpdateCustomer(context.Background(), testActor, c.ID, dto.UpdatePartyRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, phone, updated.Phone)
}

func TestArchiveCustomerRequiresZeroBalance(t *testing.T) {
	e := testEngine(t)

	indebted, err := e.CreateCustomer(context.Background(), testActor, dto.CreatePartyRequest{
		Name: "Alice", OpeningBalance: num("10"),
	})
	require.NoError(t, err)
	settled := seedCustomer(t, e, "Carol")

	err = e.ArchiveCustomer(context.Background(), testActor, indebted.ID)
	require.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, e.ArchiveCustomer(context.Background(), testActor, settled.ID))
	assert.True(t, e.Snapshot().CustomerByID(settled.ID).IsArchived)

	require.NoError(t, e.UnarchiveCustomer(context.Background(), testActor, settled.ID))
	assert.False(t, e.Snapshot().CustomerByID(settled.ID).IsArchived)
}

func TestArchiveSupplierRequiresZeroBalance(t *testing.T) {
	e := testEngine(t)

	owed, err := e.CreateSupplier(context.Background(), testActor, dto.CreatePartyRequest{
		Name: "Bob Inc", OpeningBalance: num("75"),
	})
	require.NoError(t, err)

	err = e.ArchiveSupplier(context.Background(), testActor, owed.ID)
	require.ErrorIs(t, err, apperrors.ErrConflict)
}
