// internal/checkout/domain_test.go
package checkout

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"equiptrack/internal/inventory"
)

var testDay = time.Date(2026, time.March, 10, 15, 4, 5, 0, time.UTC)

func newEmployee(name string, skill inventory.Skill) *Employee {
	return &Employee{ID: uuid.New(), Name: name, Skill: skill}
}

func newEquipment(name string, skill inventory.Skill) *inventory.Equipment {
	return &inventory.Equipment{
		ID:            uuid.New(),
		Name:          name,
		Condition:     inventory.ConditionGood,
		Status:        inventory.StatusAvailable,
		RequiredSkill: skill,
	}
}

func TestCheckOutCreatesBorrowedTransaction(t *testing.T) {
	emp := newEmployee("Jorge", inventory.SkillElectrician)
	eq := newEquipment("Voltage Tester", inventory.SkillElectrician)

	txn, err := emp.CheckOut(eq, testDay)
	require.NoError(t, err)

	assert.Equal(t, StatusBorrowed, txn.Status)
	assert.Equal(t, DateOnly(testDay), txn.BorrowDate)
	assert.Equal(t, DateOnly(testDay).AddDate(0, 0, LoanPeriodDays), txn.ExpectedReturnDate)
	require.NotNil(t, txn.CheckoutCondition)
	assert.Equal(t, inventory.ConditionGood, *txn.CheckoutCondition)
	assert.Nil(t, txn.ReturnDate)
	assert.Nil(t, txn.ReturnCondition)
	assert.Contains(t, emp.Transactions, txn)
	assert.Equal(t, inventory.StatusLoaned, eq.Status)
}

func TestCheckOutRejectsLoanedEquipment(t *testing.T) {
	emp := newEmployee("Jorge", inventory.SkillElectrician)
	eq := newEquipment("Voltage Tester", inventory.SkillElectrician)
	eq.Status = inventory.StatusLoaned

	txn, err := emp.CheckOut(eq, testDay)
	assert.ErrorIs(t, err, ErrEquipmentUnavailable)
	assert.Nil(t, txn)
	assert.Empty(t, emp.Transactions)
}

func TestCheckOutAcceptsOrderedEquipment(t *testing.T) {
	// Ordered equipment is picked up via checkout.
	emp := newEmployee("Jorge", inventory.SkillElectrician)
	eq := newEquipment("Voltage Tester", inventory.SkillElectrician)
	eq.Status = inventory.StatusOrdered

	txn, err := emp.CheckOut(eq, testDay)
	require.NoError(t, err)
	assert.Equal(t, StatusBorrowed, txn.Status)
	assert.Equal(t, inventory.StatusLoaned, eq.Status)
}

func TestReturnEquipmentTransitionsToReturned(t *testing.T) {
	emp := newEmployee("Jorge", inventory.SkillElectrician)
	eq := newEquipment("Voltage Tester", inventory.SkillElectrician)
	txn, err := emp.CheckOut(eq, testDay)
	require.NoError(t, err)

	later := testDay.AddDate(0, 0, 10)
	returned := emp.ReturnEquipment(txn.ID, inventory.ConditionDamaged, later)
	require.NotNil(t, returned)

	assert.Equal(t, StatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnDate)
	assert.Equal(t, DateOnly(later), *returned.ReturnDate)
	require.NotNil(t, returned.ReturnCondition)
	assert.Equal(t, inventory.ConditionDamaged, *returned.ReturnCondition)
	assert.Equal(t, inventory.StatusAvailable, eq.Status)
	assert.Equal(t, inventory.ConditionDamaged, eq.Condition)
}

func TestReturnEquipmentUnknownIDLeavesStateUnchanged(t *testing.T) {
	emp := newEmployee("Jorge", inventory.SkillElectrician)
	eq := newEquipment("Voltage Tester", inventory.SkillElectrician)
	txn, err := emp.CheckOut(eq, testDay)
	require.NoError(t, err)

	returned := emp.ReturnEquipment(uuid.New(), inventory.ConditionGood, testDay)
	assert.Nil(t, returned)
	assert.Equal(t, StatusBorrowed, txn.Status)
	assert.Nil(t, txn.ReturnDate)
	assert.Equal(t, inventory.StatusLoaned, eq.Status)
}

func TestReturnEquipmentEmptyConditionLeavesStateUnchanged(t *testing.T) {
	emp := newEmployee("Jorge", inventory.SkillElectrician)
	eq := newEquipment("Voltage Tester", inventory.SkillElectrician)
	txn, err := emp.CheckOut(eq, testDay)
	require.NoError(t, err)

	returned := emp.ReturnEquipment(txn.ID, "", testDay)
	assert.Nil(t, returned)
	assert.Equal(t, StatusBorrowed, txn.Status)
	assert.Nil(t, txn.ReturnDate)
	assert.Nil(t, txn.ReturnCondition)
	assert.Equal(t, inventory.StatusLoaned, eq.Status)
	assert.Equal(t, inventory.ConditionGood, eq.Condition)
}

func TestReturnEquipmentAlreadyReturnedIsRejected(t *testing.T) {
	emp := newEmployee("Jorge", inventory.SkillElectrician)
	eq := newEquipment("Voltage Tester", inventory.SkillElectrician)
	txn, err := emp.CheckOut(eq, testDay)
	require.NoError(t, err)

	require.NotNil(t, emp.ReturnEquipment(txn.ID, inventory.ConditionGood, testDay))
	assert.Nil(t, emp.ReturnEquipment(txn.ID, inventory.ConditionGood, testDay))
}

// recorder counts observer notifications and snapshots the transaction
// state visible at each one.
type recorder struct {
	name    string
	calls   int
	order   *[]string
	status  TransactionStatus
	retDate *time.Time
	eqState inventory.Status
}

func (r *recorder) Update(t *Transaction) {
	r.calls++
	if r.order != nil {
		*r.order = append(*r.order, r.name)
	}
	r.status = t.Status
	r.retDate = t.ReturnDate
	if t.Equipment != nil {
		r.eqState = t.Equipment.Status
	}
}

func TestRegisterObserverIgnoresDuplicates(t *testing.T) {
	txn := &Transaction{}
	obs := &recorder{}

	txn.RegisterObserver(obs)
	txn.RegisterObserver(obs)
	txn.NotifyObservers()

	assert.Equal(t, 1, obs.calls)
}

func TestRemoveObserverStopsNotifications(t *testing.T) {
	txn := &Transaction{}
	obs := &recorder{}

	txn.RegisterObserver(obs)
	txn.RemoveObserver(obs)
	txn.NotifyObservers()

	assert.Equal(t, 0, obs.calls)
}

func TestNotifyObserversRunsInRegistrationOrder(t *testing.T) {
	txn := &Transaction{}
	var order []string
	first := &recorder{name: "first", order: &order}
	second := &recorder{name: "second", order: &order}

	txn.RegisterObserver(first)
	txn.RegisterObserver(second)
	txn.NotifyObservers()

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestObserversSeeFullyUpdatedTransactionOnReturn(t *testing.T) {
	emp := newEmployee("Jorge", inventory.SkillElectrician)
	eq := newEquipment("Voltage Tester", inventory.SkillElectrician)
	txn, err := emp.CheckOut(eq, testDay)
	require.NoError(t, err)

	obs := &recorder{}
	txn.RegisterObserver(obs)

	emp.ReturnEquipment(txn.ID, inventory.ConditionGood, testDay.AddDate(0, 0, 3))

	require.Equal(t, 1, obs.calls)
	assert.Equal(t, StatusReturned, obs.status)
	require.NotNil(t, obs.retDate)
	assert.Equal(t, inventory.StatusAvailable, obs.eqState)
}

func TestLateIsDerivedNotStored(t *testing.T) {
	emp := newEmployee("Jorge", inventory.SkillElectrician)
	eq := newEquipment("Voltage Tester", inventory.SkillElectrician)
	txn, err := emp.CheckOut(eq, testDay)
	require.NoError(t, err)

	onTime := txn.ExpectedReturnDate
	pastDue := txn.ExpectedReturnDate.AddDate(0, 0, 1)

	assert.False(t, txn.IsOverdue(onTime))
	assert.Equal(t, StatusBorrowed, txn.DisplayStatus(onTime))

	assert.True(t, txn.IsOverdue(pastDue))
	assert.Equal(t, StatusLate, txn.DisplayStatus(pastDue))
	assert.Equal(t, StatusBorrowed, txn.Status, "stored status must stay Borrowed")

	emp.ReturnEquipment(txn.ID, inventory.ConditionGood, pastDue)
	assert.False(t, txn.IsOverdue(pastDue), "returned transactions are never late")
	assert.Equal(t, StatusReturned, txn.DisplayStatus(pastDue))
}

func TestTransactionInvariantsHoldUnderRandomLifecycles(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		emp := newEmployee("Jorge", inventory.SkillElectrician)
		eq := newEquipment("Voltage Tester", inventory.SkillElectrician)

		txn, err := emp.CheckOut(eq, testDay)
		if err != nil {
			rt.Fatalf("checkout failed: %v", err)
		}

		if rapid.Bool().Draw(rt, "return") {
			days := rapid.IntRange(0, 120).Draw(rt, "days")
			condition := rapid.SampledFrom(inventory.Conditions).Draw(rt, "condition")
			if emp.ReturnEquipment(txn.ID, condition, testDay.AddDate(0, 0, days)) == nil {
				rt.Fatalf("return of borrowed transaction failed")
			}
		}

		// ReturnDate is set iff the transaction is Returned, and
		// ReturnCondition is set iff ReturnDate is set.
		returned := txn.Status == StatusReturned
		if returned != (txn.ReturnDate != nil) {
			rt.Fatalf("status %s with return date %v", txn.Status, txn.ReturnDate)
		}
		if (txn.ReturnDate != nil) != (txn.ReturnCondition != nil) {
			rt.Fatalf("return date %v with return condition %v", txn.ReturnDate, txn.ReturnCondition)
		}
	})
}
