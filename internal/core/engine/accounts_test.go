package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrmohammed249/daftari/internal/apperrors"
	"github.com/amrmohammed249/daftari/internal/core/domain"
	"github.com/amrmohammed249/daftari/internal/dto"
)

func TestCreateAccountUnderParent(t *testing.T) {
	e := testEngine(t)

	acc, err := e.CreateAccount(context.Background(), testActor, dto.CreateAccountRequest{
		Code: "1105", Name: "Petty Cash", ParentCode: domain.CodeRootAssets,
	})
	require.NoError(t, err)
	assert.Equal(t, "1105", acc.Code)
	assert.True(t, acc.Balance.IsZero())

	st := e.Snapshot()
	node := st.Accounts.FindByCode("1105")
	require.NotNil(t, node)
	parentID := st.Accounts.ParentOf[node.ID]
	assert.Equal(t, st.Accounts.FindByCode(domain.CodeRootAssets).ID, parentID)
}

func TestCreateAccountRejectsDuplicateCode(t *testing.T) {
	e := testEngine(t)

	_, err := e.CreateAccount(context.Background(), testActor, dto.CreateAccountRequest{
		Code: domain.CodeCash, Name: "Another Cash",
	})
	require.ErrorIs(t, err, apperrors.ErrDuplicate)

	_, err = e.CreateAccount(context.Background(), testActor, dto.CreateAccountRequest{
		Code: "1106", Name: "Orphan", ParentCode: "9999",
	})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestNewAccountParticipatesInPostings(t *testing.T) {
	e := testEngine(t)

	acc, err := e.CreateAccount(context.Background(), testActor, dto.CreateAccountRequest{
		Code: "1105", Name: "Petty Cash", ParentCode: domain.CodeRootAssets,
	})
	require.NoError(t, err)

	_, err = e.CreateManualJournal(context.Background(), testActor, dto.CreateManualJournalRequest{
		Date:        time.Now(),
		Description: "Fund petty cash",
		Lines: []dto.ManualJournalLine{
			jLine(acc.Code, "100", "0"),
			jLine(domain.CodeCash, "0", "100"),
		},
	})
	require.NoError(t, err)

	assert.True(t, accountBalance(t, e, "1105").Equal(num("100")))
	assert.True(t, accountBalance(t, e, domain.CodeCash).Equal(num("-100")))
	// the transfer nets to zero at the root
	assert.True(t, accountBalance(t, e, domain.CodeRootAssets).IsZero())
}

func TestSiblingOrderFollowsCode(t *testing.T) {
	e := testEngine(t)

	_, err := e.CreateAccount(context.Background(), testActor, dto.CreateAccountRequest{
		Code: "1199", Name: "Other Assets", ParentCode: domain.CodeRootAssets,
	})
	require.NoError(t, err)
	_, err = e.CreateAccount(context.Background(), testActor, dto.CreateAccountRequest{
		Code: "1100", Name: "Current Assets Extra", ParentCode: domain.CodeRootAssets,
	})
	require.NoError(t, err)

	st := e.Snapshot()
	root := st.Accounts.FindByCode(domain.CodeRootAssets)
	codes := make([]string, 0, len(root.ChildIDs))
	for _, id := range root.ChildIDs {
		codes = append(codes, st.Accounts.FindByID(id).Code)
	}
	for i := 1; i < len(codes); i++ {
		assert.LessOrEqual(t, codes[i-1], codes[i])
	}
}
