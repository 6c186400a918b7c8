package legacy_test

import (
	"testing"

	"github.com/Mubina-Mulla/Pigmi/internal/adapters/legacy"
	"github.com/Mubina-Mulla/Pigmi/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FieldVariantsNormalized(t *testing.T) {
	data := []byte(`{
		"customers": {
			"ACC1700000000000042": {
				"customerName": "Sita Patil",
				"mobileNumber": "9876543210",
				"village": "Kurundwad",
				"agentName": "ramesh",
				"route": "north",
				"depositAmount": "1500.50",
				"withdrawn": 200,
				"createdDate": 1700000000000
			}
		}
	}`)

	export, err := legacy.Parse(data)
	require.NoError(t, err)
	require.Len(t, export.Customers, 1)

	c := export.Customers[0]
	assert.Equal(t, "ACC1700000000000042", c.AccountNo)
	assert.Equal(t, "Sita Patil", c.Name)
	assert.Equal(t, "9876543210", c.Mobile)
	assert.Equal(t, []string{"north"}, c.Route)
	assert.True(t, c.TotalAmount.Equal(decimal.RequireFromString("1500.50")), "total = %s", c.TotalAmount)
	assert.True(t, c.WithdrawnAmount.Equal(decimal.NewFromInt(200)), "withdrawn = %s", c.WithdrawnAmount)
	assert.Equal(t, domain.StatusActive, c.Status)
}

func TestParse_NameAndMobilePrecedence(t *testing.T) {
	data := []byte(`{
		"customers": {
			"ACC1700000000000001": {
				"name": "canonical",
				"customerName": "stale",
				"mobile": "1111111111",
				"mobileNumber": "2222222222",
				"phone": "3333333333"
			}
		}
	}`)

	export, err := legacy.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "canonical", export.Customers[0].Name)
	assert.Equal(t, "1111111111", export.Customers[0].Mobile)
}

func TestParse_FlatPathWinsOverNestedMirror(t *testing.T) {
	data := []byte(`{
		"agents": {
			"ramesh": {
				"mobile": "9000000000",
				"route": ["north"],
				"customers": {
					"ACC1700000000000042": {
						"name": "Sita Patil",
						"transactions": {
							"TXN0A1B2C3D": {"type": "deposit", "amount": 500, "note": "stale mirror copy"},
							"TXN99999999": {"type": "deposit", "amount": 100}
						}
					}
				}
			}
		},
		"transactions": {
			"ACC1700000000000042": {
				"TXN0A1B2C3D": {"type": "deposit", "amount": 500, "note": "flat copy"}
			}
		}
	}`)

	export, err := legacy.Parse(data)
	require.NoError(t, err)

	txns := export.Transactions["ACC1700000000000042"]
	require.Len(t, txns, 2)

	byID := make(map[string]domain.Transaction)
	for _, tx := range txns {
		byID[tx.TransactionID] = tx
	}
	assert.Equal(t, "flat copy", byID["TXN0A1B2C3D"].Note)
	assert.True(t, byID["TXN99999999"].Amount.Equal(decimal.NewFromInt(100)))
}

func TestParse_RouteStringBecomesSingletonSlice(t *testing.T) {
	data := []byte(`{
		"agents": {
			"ramesh": {"route": "north"},
			"suresh": {"route": ["east", "west"]}
		}
	}`)

	export, err := legacy.Parse(data)
	require.NoError(t, err)
	require.Len(t, export.Agents, 2)
	assert.Equal(t, []string{"north"}, export.Agents[0].Route)
	assert.Equal(t, []string{"east", "west"}, export.Agents[1].Route)
}

func TestParse_RoutesAndDeterministicOrder(t *testing.T) {
	data := []byte(`{
		"routes": {
			"south": {"villages": ["a", "b"]},
			"north": {"villages": "solo"}
		}
	}`)

	export, err := legacy.Parse(data)
	require.NoError(t, err)
	require.Len(t, export.Routes, 2)
	assert.Equal(t, "north", export.Routes[0].Name)
	assert.Equal(t, []string{"solo"}, export.Routes[0].Villages)
	assert.Equal(t, "south", export.Routes[1].Name)
}

func TestParse_DefaultsModeToCash(t *testing.T) {
	data := []byte(`{
		"transactions": {
			"ACC1700000000000042": {
				"TXN00000001": {"type": "deposit", "amount": 50}
			}
		}
	}`)

	export, err := legacy.Parse(data)
	require.NoError(t, err)
	txns := export.Transactions["ACC1700000000000042"]
	require.Len(t, txns, 1)
	assert.Equal(t, domain.ModeCash, txns[0].Mode)
	assert.Equal(t, "ACC1700000000000042", txns[0].AccountNo)
}

func TestParse_MalformedExport(t *testing.T) {
	_, err := legacy.Parse([]byte(`{"customers": []}`))
	assert.Error(t, err)
}
