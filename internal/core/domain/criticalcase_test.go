package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdhadshhd/med-point/internal/core/domain"
	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
)

func TestClassifyMUAC(t *testing.T) {
	tests := []struct {
		name string
		cm   float64
		want domain.MUACStatus
	}{
		{"severe malnutrition", 10.0, domain.MUACRed},
		{"just under red threshold", 11.49, domain.MUACRed},
		{"red threshold is yellow", 11.5, domain.MUACYellow},
		{"moderate risk", 12.0, domain.MUACYellow},
		{"just under green threshold", 12.49, domain.MUACYellow},
		{"green threshold", 12.5, domain.MUACGreen},
		{"healthy", 15.0, domain.MUACGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyMUAC(tt.cm))
		})
	}
}

func TestComputeBMI(t *testing.T) {
	// 70 kg at 175 cm -> 22.857... rounds to 22.9
	assert.Equal(t, 22.9, domain.ComputeBMI(70, 175))
	// 50 kg at 160 cm -> 19.531... rounds to 19.5
	assert.Equal(t, 19.5, domain.ComputeBMI(50, 160))
}

func TestNewAutoFlag(t *testing.T) {
	patientID := uuid.New()
	doctorID := uuid.New()

	flag, err := domain.NewAutoFlag(patientID, doctorID)
	require.NoError(t, err)

	assert.Equal(t, domain.FlagActive, flag.Status)
	assert.Equal(t, domain.AutoFlagReason, flag.Reason)
	assert.True(t, flag.Auto)
	assert.True(t, flag.IsActive())
	assert.Nil(t, flag.UnflaggedAt)

	t.Run("doctor is optional", func(t *testing.T) {
		flag, err := domain.NewAutoFlag(patientID, uuid.Nil)
		require.NoError(t, err)
		assert.Equal(t, uuid.Nil, flag.DoctorID)
	})

	t.Run("patient required", func(t *testing.T) {
		_, err := domain.NewAutoFlag(uuid.Nil, doctorID)
		assert.ErrorIs(t, err, apperrors.ErrPatientRequired)
	})
}

func TestCriticalCaseFlag_Resolve(t *testing.T) {
	newFlag := func() *domain.CriticalCaseFlag {
		f, err := domain.NewAutoFlag(uuid.New(), uuid.New())
		require.NoError(t, err)
		return f
	}

	t.Run("with reason", func(t *testing.T) {
		f := newFlag()
		require.NoError(t, f.Resolve("patient recovered"))

		assert.Equal(t, domain.FlagResolved, f.Status)
		assert.Equal(t, "Resolved: patient recovered", f.Reason)
		assert.NotNil(t, f.UnflaggedAt)
		assert.False(t, f.IsActive())
	})

	t.Run("without reason", func(t *testing.T) {
		f := newFlag()
		require.NoError(t, f.Resolve(""))

		assert.Equal(t, "Resolved by system/doctor", f.Reason)
	})

	t.Run("twice", func(t *testing.T) {
		f := newFlag()
		require.NoError(t, f.Resolve("done"))

		err := f.Resolve("again")
		assert.ErrorIs(t, err, apperrors.ErrFlagAlreadyResolved)
		assert.Equal(t, "Resolved: done", f.Reason)
	})
}
