package memory

import (
	"context"
	"errors"
	"testing"

	"bank-records/internal/domain/account"
	"bank-records/internal/domain/customer"
	"bank-records/internal/domain/product"
	"bank-records/internal/domain/registry"
	"bank-records/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountStore() *Store[account.Account, *account.Account] {
	return NewStore[account.Account, *account.Account](product.KindAccount)
}

func saveCustomer(t *testing.T, s *Store[account.Account, *account.Account], mobile string) *customer.Customer {
	t.Helper()
	c := customer.NewCustomer("Jane Doe", "jane@example.com", mobile)
	err := s.Within(context.Background(), func(ctx context.Context, st registry.Stores[account.Account]) error {
		return st.Customers.Save(ctx, c)
	})
	require.NoError(t, err)
	return c
}

func TestCustomerRepo_SaveAssignsIDAndIndexesMobile(t *testing.T) {
	s := newAccountStore()
	first := saveCustomer(t, s, "1234567890")
	second := saveCustomer(t, s, "0987654321")

	assert.Equal(t, int64(1), first.CustomerID)
	assert.Equal(t, int64(2), second.CustomerID)

	err := s.Within(context.Background(), func(ctx context.Context, st registry.Stores[account.Account]) error {
		found, err := st.Customers.FindByMobileNumber(ctx, "0987654321")
		require.NoError(t, err)
		assert.Equal(t, second.CustomerID, found.CustomerID)

		_, err = st.Customers.FindByMobileNumber(ctx, "1111111111")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestCustomerRepo_RejectsDuplicateMobile(t *testing.T) {
	s := newAccountStore()
	saveCustomer(t, s, "1234567890")

	err := s.Within(context.Background(), func(ctx context.Context, st registry.Stores[account.Account]) error {
		return st.Customers.Save(ctx, customer.NewCustomer("John Roe", "john@example.com", "1234567890"))
	})

	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestCustomerRepo_UpdateMovesMobileIndex(t *testing.T) {
	s := newAccountStore()
	c := saveCustomer(t, s, "1234567890")

	err := s.Within(context.Background(), func(ctx context.Context, st registry.Stores[account.Account]) error {
		c.MobileNumber = "5555555555"
		if err := st.Customers.Save(ctx, c); err != nil {
			return err
		}
		_, err := st.Customers.FindByMobileNumber(ctx, "1234567890")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestWithin_RollsBackOnError(t *testing.T) {
	s := newAccountStore()
	boom := errors.New("boom")

	err := s.Within(context.Background(), func(ctx context.Context, st registry.Stores[account.Account]) error {
		c := customer.NewCustomer("Jane Doe", "jane@example.com", "1234567890")
		require.NoError(t, st.Customers.Save(ctx, c))
		a := &account.Account{}
		a.Issue(c.CustomerID, 1_000_000_001)
		require.NoError(t, st.Products.Save(ctx, a))
		return boom
	})
	require.ErrorIs(t, err, boom)

	report, err := s.CountOrphans(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Consistent())

	err = s.Within(context.Background(), func(ctx context.Context, st registry.Stores[account.Account]) error {
		_, err := st.Customers.FindByMobileNumber(ctx, "1234567890")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		_, err = st.Products.FindByID(ctx, 1_000_000_001)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestWithin_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := newAccountStore().Within(ctx, func(context.Context, registry.Stores[account.Account]) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestProductRepo_SaveRejectsForeignIdentifier(t *testing.T) {
	s := newAccountStore()
	owner := saveCustomer(t, s, "1234567890")
	other := saveCustomer(t, s, "0987654321")

	err := s.Within(context.Background(), func(ctx context.Context, st registry.Stores[account.Account]) error {
		a := &account.Account{}
		a.Issue(owner.CustomerID, 1_000_000_001)
		require.NoError(t, st.Products.Save(ctx, a))

		clash := &account.Account{}
		clash.Issue(other.CustomerID, 1_000_000_001)
		err := st.Products.Save(ctx, clash)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

		second := &account.Account{}
		second.Issue(owner.CustomerID, 1_000_000_002)
		err = st.Products.Save(ctx, second)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
		return nil
	})
	require.NoError(t, err)
}

func TestProductRepo_FindReturnsCopies(t *testing.T) {
	s := newAccountStore()
	owner := saveCustomer(t, s, "1234567890")

	err := s.Within(context.Background(), func(ctx context.Context, st registry.Stores[account.Account]) error {
		a := &account.Account{}
		a.Issue(owner.CustomerID, 1_000_000_001)
		require.NoError(t, st.Products.Save(ctx, a))

		found, err := st.Products.FindByCustomerID(ctx, owner.CustomerID)
		require.NoError(t, err)
		found.AccountType = "Current"

		again, err := st.Products.FindByID(ctx, 1_000_000_001)
		require.NoError(t, err)
		assert.Equal(t, account.DefaultAccountType, again.AccountType)
		return nil
	})
	require.NoError(t, err)
}

func TestProductRepo_DeleteByCustomerIDWithoutMatch(t *testing.T) {
	err := newAccountStore().Within(context.Background(), func(ctx context.Context, st registry.Stores[account.Account]) error {
		return st.Products.DeleteByCustomerID(ctx, 42)
	})
	assert.NoError(t, err)
}

func TestAudit_CountsAndRemovesOrphans(t *testing.T) {
	s := newAccountStore()
	paired := saveCustomer(t, s, "1234567890")
	saveCustomer(t, s, "0987654321")

	err := s.Within(context.Background(), func(ctx context.Context, st registry.Stores[account.Account]) error {
		a := &account.Account{}
		a.Issue(paired.CustomerID, 1_000_000_001)
		if err := st.Products.Save(ctx, a); err != nil {
			return err
		}
		orphan := &account.Account{}
		orphan.Issue(99, 1_000_000_002)
		return st.Products.Save(ctx, orphan)
	})
	require.NoError(t, err)

	report, err := s.CountOrphans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, product.KindAccount, report.Kind)
	assert.Equal(t, int64(1), report.OrphanCustomers)
	assert.Equal(t, int64(1), report.OrphanProducts)
	assert.False(t, report.Consistent())

	removed, err := s.DeleteOrphanCustomers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	report, err = s.CountOrphans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), report.OrphanCustomers)
}
