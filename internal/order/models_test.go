package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testIdentity = Identity{
	Name:            "Ali",
	Phone:           "0999",
	City:            "Damascus",
	TransactionType: DirectionBuy,
}

var testBuy = BuyOrder{
	Amount:        decimal.NewFromInt(200),
	Network:       NetworkTRC20,
	Address:       "TD2LoErPRkVPBxDk72ZErtiyi6agirZQjX",
	PaymentMethod: "syriatelcash",
}

var testSell = SellOrder{
	Amount:          decimal.NewFromInt(50),
	Network:         NetworkBEP20,
	ReceivingMethod: "shamcash",
	AccountDetails:  "5991161126028260",
}

func TestIdentityComplete(t *testing.T) {
	require.True(t, testIdentity.Complete())

	for _, incomplete := range []Identity{
		{Phone: "0999", City: "Damascus", TransactionType: DirectionBuy},
		{Name: "Ali", City: "Damascus", TransactionType: DirectionBuy},
		{Name: "Ali", Phone: "0999", TransactionType: DirectionBuy},
		{Name: "Ali", Phone: "0999", City: "Damascus"},
		{Name: "Ali", Phone: "0999", City: "Damascus", TransactionType: Direction("trade")},
	} {
		require.False(t, incomplete.Complete(), "%+v", incomplete)
	}
}

func TestBuyOrderComplete(t *testing.T) {
	require.True(t, testBuy.Complete())

	zeroAmount := testBuy
	zeroAmount.Amount = decimal.Zero
	require.False(t, zeroAmount.Complete())

	negativeAmount := testBuy
	negativeAmount.Amount = decimal.NewFromInt(-10)
	require.False(t, negativeAmount.Complete())

	noNetwork := testBuy
	noNetwork.Network = ""
	require.False(t, noNetwork.Complete())

	noAddress := testBuy
	noAddress.Address = ""
	require.False(t, noAddress.Complete())

	noMethod := testBuy
	noMethod.PaymentMethod = ""
	require.False(t, noMethod.Complete())
}

func TestSellOrderComplete(t *testing.T) {
	require.True(t, testSell.Complete())

	zeroAmount := testSell
	zeroAmount.Amount = decimal.Zero
	require.False(t, zeroAmount.Complete())

	noMethod := testSell
	noMethod.ReceivingMethod = ""
	require.False(t, noMethod.Complete())

	noAccount := testSell
	noAccount.AccountDetails = ""
	require.False(t, noAccount.Complete())

	noNetwork := testSell
	noNetwork.Network = ""
	require.False(t, noNetwork.Complete())
}

func TestNewRecordPopulatesExactlyOneSide(t *testing.T) {
	buyIdentity := testIdentity
	buy := testBuy
	sell := testSell

	rec, err := NewRecord(buyIdentity, &buy, &sell,
		decimal.RequireFromString("3.3"), decimal.NewFromInt(2),
		decimal.RequireFromString("5.3"), decimal.NewFromInt(2053000), time.Now())
	require.NoError(t, err)
	require.NotNil(t, rec.Buy)
	require.Nil(t, rec.Sell)

	sellIdentity := testIdentity
	sellIdentity.TransactionType = DirectionSell

	rec, err = NewRecord(sellIdentity, &buy, &sell,
		decimal.RequireFromString("1.65"), decimal.RequireFromString("0.15"),
		decimal.RequireFromString("1.8"), decimal.NewFromInt(482000), time.Now())
	require.NoError(t, err)
	require.Nil(t, rec.Buy)
	require.NotNil(t, rec.Sell)
}

func TestNewRecordRejectsBadInput(t *testing.T) {
	buy := testBuy
	sell := testSell
	fee := decimal.RequireFromString("3.3")

	_, err := NewRecord(Identity{}, &buy, &sell, fee, fee, fee, fee, time.Now())
	require.ErrorIs(t, err, ErrIncompleteIdentity)

	_, err = NewRecord(testIdentity, nil, &sell, fee, fee, fee, fee, time.Now())
	require.ErrorIs(t, err, ErrDirectionMismatch)

	incompleteBuy := testBuy
	incompleteBuy.Address = ""
	_, err = NewRecord(testIdentity, &incompleteBuy, nil, fee, fee, fee, fee, time.Now())
	require.ErrorIs(t, err, ErrIncompleteOrder)
}

func TestNewRecordSnapshotsDetails(t *testing.T) {
	buy := testBuy

	rec, err := NewRecord(testIdentity, &buy, nil,
		decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, time.Now())
	require.NoError(t, err)

	// Mutating the form state after construction must not leak into the record.
	buy.Address = "changed"
	require.Equal(t, testBuy.Address, rec.Buy.Address)
}

func TestRecordValidate(t *testing.T) {
	buy := testBuy
	sell := testSell

	valid := Record{Identity: testIdentity, Buy: &buy, Timestamp: time.Now()}
	require.NoError(t, valid.Validate())

	bothSides := Record{Identity: testIdentity, Buy: &buy, Sell: &sell}
	require.ErrorIs(t, bothSides.Validate(), ErrDirectionMismatch)

	neitherSide := Record{Identity: testIdentity}
	require.ErrorIs(t, neitherSide.Validate(), ErrDirectionMismatch)

	noDirection := Record{Identity: Identity{Name: "Ali", Phone: "0999", City: "Damascus"}, Buy: &buy}
	require.ErrorIs(t, noDirection.Validate(), ErrIncompleteIdentity)
}

func TestRecordAmountAndNetwork(t *testing.T) {
	buy := testBuy
	rec := Record{Identity: testIdentity, Buy: &buy}
	require.True(t, rec.Amount().Equal(testBuy.Amount))
	require.Equal(t, NetworkTRC20, rec.Network())

	empty := Record{}
	require.True(t, empty.Amount().IsZero())
	require.Equal(t, Network(""), empty.Network())
}
