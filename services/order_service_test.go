package services

import (
	"testing"

	"littlelemon/entity"
	"littlelemon/pkg/apperr"
	"littlelemon/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckout(t *testing.T) {
	f := newFixture(t)
	customer := f.seedUser(t, "cust@example.com", entity.RoleCustomer)
	cat := f.seedCategory(t, "mains")
	pizza := f.seedMenuItem(t, "Pizza", "9.00", cat.ID)
	soda := f.seedMenuItem(t, "Soda", "2.50", cat.ID)

	fillCart := func(t *testing.T) {
		t.Helper()
		_, err := f.cart.Add(customer.ID, entity.RoleCustomer, &AddToCartIn{MenuItemID: pizza.ID, Quantity: 2})
		require.NoError(t, err)
		_, err = f.cart.Add(customer.ID, entity.RoleCustomer, &AddToCartIn{MenuItemID: soda.ID, Quantity: 1})
		require.NoError(t, err)
	}

	t.Run("moves every cart line into the order and empties the cart", func(t *testing.T) {
		fillCart(t)

		order, err := f.order.Checkout(customer.ID, entity.RoleCustomer, &CheckoutIn{Date: "2024-03-01"})

		require.NoError(t, err)
		assert.Equal(t, customer.ID, order.UserID)
		assert.False(t, order.Status)
		assert.Nil(t, order.DeliveryCrewID)
		assert.Equal(t, "2024-03-01", order.Date)
		require.Len(t, order.Items, 2)
		assert.True(t, order.Total.Equal(decimal.RequireFromString("20.50")), "got total %s", order.Total)

		lines, _, err := f.cart.List(customer.ID, entity.RoleCustomer)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("order items keep the snapshot even after a price change", func(t *testing.T) {
		fillCart(t)
		require.NoError(t, f.db.Model(&entity.MenuItem{}).Where("id = ?", pizza.ID).
			Update("price", decimal.RequireFromString("99.99")).Error)

		order, err := f.order.Checkout(customer.ID, entity.RoleCustomer, &CheckoutIn{Date: "2024-03-02"})

		require.NoError(t, err)
		for _, it := range order.Items {
			if it.MenuItemID == pizza.ID {
				assert.True(t, it.UnitPrice.Equal(decimal.RequireFromString("9.00")))
				assert.True(t, it.LinePrice.Equal(decimal.RequireFromString("18.00")))
			}
		}
		// reset for the remaining subtests
		require.NoError(t, f.db.Model(&entity.MenuItem{}).Where("id = ?", pizza.ID).
			Update("price", decimal.RequireFromString("9.00")).Error)
	})

	t.Run("empty cart yields a zero-item order", func(t *testing.T) {
		order, err := f.order.Checkout(customer.ID, entity.RoleCustomer, &CheckoutIn{Date: "2024-03-03"})

		require.NoError(t, err)
		assert.Empty(t, order.Items)
		assert.True(t, order.Total.IsZero())
	})

	t.Run("invalid date is a validation error", func(t *testing.T) {
		for _, bad := range []string{"03/01/2024", "2024-13-01", "2024-02-30", "yesterday", ""} {
			_, err := f.order.Checkout(customer.ID, entity.RoleCustomer, &CheckoutIn{Date: bad})
			require.Error(t, err, "date %q", bad)
			assert.ErrorIs(t, err, apperr.ErrValidation, "date %q", bad)
		}
	})

	t.Run("managers and delivery crew cannot check out", func(t *testing.T) {
		for _, role := range []entity.Role{entity.RoleManager, entity.RoleDeliveryCrew} {
			_, err := f.order.Checkout(customer.ID, role, &CheckoutIn{Date: "2024-03-01"})
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrForbidden)
		}
	})
}

func TestCheckoutIsAtomic(t *testing.T) {
	f := newFixture(t)
	customer := f.seedUser(t, "cust@example.com", entity.RoleCustomer)
	cat := f.seedCategory(t, "mains")
	pizza := f.seedMenuItem(t, "Pizza", "9.00", cat.ID)
	soda := f.seedMenuItem(t, "Soda", "2.50", cat.ID)

	_, err := f.cart.Add(customer.ID, entity.RoleCustomer, &AddToCartIn{MenuItemID: pizza.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = f.cart.Add(customer.ID, entity.RoleCustomer, &AddToCartIn{MenuItemID: soda.ID, Quantity: 1})
	require.NoError(t, err)

	// one of the two referenced menu items disappears before checkout
	require.NoError(t, f.db.Delete(&entity.MenuItem{}, soda.ID).Error)

	_, err = f.order.Checkout(customer.ID, entity.RoleCustomer, &CheckoutIn{Date: "2024-03-01"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrTx)

	// nothing committed: no order, no order items, cart untouched
	assert.EqualValues(t, 0, f.countOf(t, &entity.Order{}))
	assert.EqualValues(t, 0, f.countOf(t, &entity.OrderItem{}))
	lines, _, err := f.cart.List(customer.ID, entity.RoleCustomer)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestCheckoutCartRemovalGuard(t *testing.T) {
	f := newFixture(t)
	customer := f.seedUser(t, "cust@example.com", entity.RoleCustomer)
	cat := f.seedCategory(t, "mains")
	pizza := f.seedMenuItem(t, "Pizza", "9.00", cat.ID)
	soda := f.seedMenuItem(t, "Soda", "2.50", cat.ID)

	_, err := f.cart.Add(customer.ID, entity.RoleCustomer, &AddToCartIn{MenuItemID: pizza.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = f.cart.Add(customer.ID, entity.RoleCustomer, &AddToCartIn{MenuItemID: soda.ID, Quantity: 1})
	require.NoError(t, err)

	var lines []entity.CartLine
	require.NoError(t, f.db.Where("user_id = ?", customer.ID).Find(&lines).Error)
	require.Len(t, lines, 2)
	ids := []uint{lines[0].ID, lines[1].ID}

	// another session consumes one of the lines between read and delete,
	// the way a rival checkout of the same cart would
	require.NoError(t, f.db.Where("id = ?", ids[0]).Delete(&entity.CartLine{}).Error)

	// the short row count is what Checkout turns into a rollback
	removed, err := repository.NewCartRepository(f.db).ClearLines(f.db, customer.ID, ids)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
}

func TestOrderListing(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice@example.com", entity.RoleCustomer)
	bob := f.seedUser(t, "bob@example.com", entity.RoleCustomer)
	manager := f.seedUser(t, "mgr@example.com", entity.RoleManager)
	crew := f.seedUser(t, "crew@example.com", entity.RoleDeliveryCrew)
	cat := f.seedCategory(t, "mains")
	pizza := f.seedMenuItem(t, "Pizza", "9.00", cat.ID)

	checkout := func(t *testing.T, userID uint, date string) *entity.Order {
		t.Helper()
		_, err := f.cart.Add(userID, entity.RoleCustomer, &AddToCartIn{MenuItemID: pizza.ID, Quantity: 1})
		require.NoError(t, err)
		order, err := f.order.Checkout(userID, entity.RoleCustomer, &CheckoutIn{Date: date})
		require.NoError(t, err)
		return order
	}

	o1 := checkout(t, alice.ID, "2024-03-01")
	o2 := checkout(t, alice.ID, "2024-03-02")
	o3 := checkout(t, bob.ID, "2024-03-03")

	// assign one of alice's orders to the crew member
	status := false
	_, err := f.order.Update(entity.RoleManager, o2.ID, &UpdateOrderIn{DeliveryCrewID: crew.ID, Status: &status})
	require.NoError(t, err)

	t.Run("manager sees all orders", func(t *testing.T) {
		orders, err := f.order.List(manager.ID, entity.RoleManager, repository.OrderFilter{})
		require.NoError(t, err)
		assert.Len(t, orders, 3)
	})

	t.Run("delivery crew sees only assigned orders", func(t *testing.T) {
		orders, err := f.order.List(crew.ID, entity.RoleDeliveryCrew, repository.OrderFilter{})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, o2.ID, orders[0].ID)
	})

	t.Run("customer sees only own orders", func(t *testing.T) {
		orders, err := f.order.List(bob.ID, entity.RoleCustomer, repository.OrderFilter{})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, o3.ID, orders[0].ID)
	})

	t.Run("customer can fetch own order by id", func(t *testing.T) {
		order, err := f.order.Get(alice.ID, entity.RoleCustomer, o1.ID)
		require.NoError(t, err)
		assert.Equal(t, o1.ID, order.ID)
	})

	t.Run("fetching someone else's order is forbidden, not not-found", func(t *testing.T) {
		_, err := f.order.Get(bob.ID, entity.RoleCustomer, o1.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		assert.NotErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("manager and crew are denied the single-order endpoint", func(t *testing.T) {
		_, err := f.order.Get(manager.ID, entity.RoleManager, o1.ID)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		_, err = f.order.Get(crew.ID, entity.RoleDeliveryCrew, o2.ID)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})
}

func TestOrderTransitions(t *testing.T) {
	f := newFixture(t)
	customer := f.seedUser(t, "cust@example.com", entity.RoleCustomer)
	crew := f.seedUser(t, "crew@example.com", entity.RoleDeliveryCrew)
	otherCrew := f.seedUser(t, "crew2@example.com", entity.RoleDeliveryCrew)
	cat := f.seedCategory(t, "mains")
	pizza := f.seedMenuItem(t, "Pizza", "9.00", cat.ID)

	newOrder := func(t *testing.T, date string) *entity.Order {
		t.Helper()
		_, err := f.cart.Add(customer.ID, entity.RoleCustomer, &AddToCartIn{MenuItemID: pizza.ID, Quantity: 1})
		require.NoError(t, err)
		order, err := f.order.Checkout(customer.ID, entity.RoleCustomer, &CheckoutIn{Date: date})
		require.NoError(t, err)
		return order
	}

	t.Run("manager patch of status only leaves the crew untouched", func(t *testing.T) {
		order := newOrder(t, "2024-03-01")
		status := false
		_, err := f.order.Update(entity.RoleManager, order.ID, &UpdateOrderIn{DeliveryCrewID: crew.ID, Status: &status})
		require.NoError(t, err)

		delivered := true
		patched, err := f.order.Patch(0, entity.RoleManager, order.ID, &PatchOrderIn{Status: &delivered})

		require.NoError(t, err)
		require.NotNil(t, patched.DeliveryCrewID)
		assert.Equal(t, crew.ID, *patched.DeliveryCrewID)
		assert.True(t, patched.Status)
	})

	t.Run("manager patch of crew only leaves the status untouched", func(t *testing.T) {
		order := newOrder(t, "2024-03-02")

		patched, err := f.order.Patch(0, entity.RoleManager, order.ID, &PatchOrderIn{DeliveryCrewID: &crew.ID})

		require.NoError(t, err)
		require.NotNil(t, patched.DeliveryCrewID)
		assert.Equal(t, crew.ID, *patched.DeliveryCrewID)
		assert.False(t, patched.Status)
	})

	t.Run("assignee must hold the delivery crew role", func(t *testing.T) {
		order := newOrder(t, "2024-03-03")

		_, err := f.order.Patch(0, entity.RoleManager, order.ID, &PatchOrderIn{DeliveryCrewID: &customer.ID})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("crew can update status on an order assigned to them", func(t *testing.T) {
		order := newOrder(t, "2024-03-04")
		_, err := f.order.Patch(0, entity.RoleManager, order.ID, &PatchOrderIn{DeliveryCrewID: &crew.ID})
		require.NoError(t, err)

		delivered := true
		patched, err := f.order.Patch(crew.ID, entity.RoleDeliveryCrew, order.ID, &PatchOrderIn{Status: &delivered})

		require.NoError(t, err)
		assert.True(t, patched.Status)
	})

	t.Run("crew cannot update status on someone else's order", func(t *testing.T) {
		order := newOrder(t, "2024-03-05")
		_, err := f.order.Patch(0, entity.RoleManager, order.ID, &PatchOrderIn{DeliveryCrewID: &crew.ID})
		require.NoError(t, err)

		delivered := true
		_, err = f.order.Patch(otherCrew.ID, entity.RoleDeliveryCrew, order.ID, &PatchOrderIn{Status: &delivered})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrForbidden)

		fresh, ferr := f.order.Get(customer.ID, entity.RoleCustomer, order.ID)
		require.NoError(t, ferr)
		assert.False(t, fresh.Status, "denied update must not mutate state")
	})

	t.Run("crew cannot reassign the order", func(t *testing.T) {
		order := newOrder(t, "2024-03-06")
		_, err := f.order.Patch(0, entity.RoleManager, order.ID, &PatchOrderIn{DeliveryCrewID: &crew.ID})
		require.NoError(t, err)

		_, err = f.order.Patch(crew.ID, entity.RoleDeliveryCrew, order.ID, &PatchOrderIn{DeliveryCrewID: &otherCrew.ID})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("customer has no transition rights", func(t *testing.T) {
		order := newOrder(t, "2024-03-07")
		delivered := true

		_, err := f.order.Patch(customer.ID, entity.RoleCustomer, order.ID, &PatchOrderIn{Status: &delivered})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("customer patching a missing order learns nothing about its existence", func(t *testing.T) {
		delivered := true

		_, err := f.order.Patch(customer.ID, entity.RoleCustomer, 9999, &PatchOrderIn{Status: &delivered})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		assert.NotErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("delivered without an assigned crew is rejected", func(t *testing.T) {
		order := newOrder(t, "2024-03-08")
		delivered := true

		_, err := f.order.Patch(0, entity.RoleManager, order.ID, &PatchOrderIn{Status: &delivered})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestOrderDelete(t *testing.T) {
	f := newFixture(t)
	customer := f.seedUser(t, "cust@example.com", entity.RoleCustomer)
	cat := f.seedCategory(t, "mains")
	pizza := f.seedMenuItem(t, "Pizza", "9.00", cat.ID)

	_, err := f.cart.Add(customer.ID, entity.RoleCustomer, &AddToCartIn{MenuItemID: pizza.ID, Quantity: 1})
	require.NoError(t, err)
	order, err := f.order.Checkout(customer.ID, entity.RoleCustomer, &CheckoutIn{Date: "2024-03-01"})
	require.NoError(t, err)

	t.Run("only managers may delete", func(t *testing.T) {
		for _, role := range []entity.Role{entity.RoleDeliveryCrew, entity.RoleCustomer} {
			err := f.order.Delete(role, order.ID)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrForbidden)
		}
	})

	t.Run("manager delete removes the order and its items", func(t *testing.T) {
		require.NoError(t, f.order.Delete(entity.RoleManager, order.ID))

		err := f.order.Delete(entity.RoleManager, order.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.EqualValues(t, 0, f.countOf(t, &entity.OrderItem{}))
	})
}
