package order_test

import (
	"testing"
	"time"

	"labos/internal/core/domain/model/kernel"
	"labos/internal/core/domain/model/order"
	"labos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func newDraftResult(t *testing.T) *order.ExamResult {
	t.Helper()

	result, err := order.NewExamResult(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"Glicose", order.OriginManual, 1,
	)
	require.NoError(t, err)
	return result
}

// newReviewedResult drives a result to aguardando_revisao with QC approved,
// ready to be released.
func newReviewedResult(t *testing.T, valor float64) *order.ExamResult {
	t.Helper()

	result := newDraftResult(t)
	require.NoError(t, result.SetValue(floatPtr(valor), "", ""))
	require.NoError(t, result.StartAnalysis())
	require.NoError(t, result.SendToReview("dr.revisor", time.Now()))
	require.NoError(t, result.ApproveQC("dr.revisor", time.Now()))
	return result
}

func TestNewExamResult(t *testing.T) {
	t.Run("should create draft result at version 1", func(t *testing.T) {
		result := newDraftResult(t)

		require.NoError(t, result.Validate())
		assert.Equal(t, order.ResultRascunho, result.Status())
		assert.Equal(t, 1, result.Versao())
		assert.Empty(t, result.HistoricoVersoes())
		assert.Equal(t, order.ClassificationNormal, result.Classificacao())
	})

	t.Run("should fail without parametro", func(t *testing.T) {
		_, err := order.NewExamResult(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"", order.OriginManual, 1,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "parametro")
	})
}

func TestExamResult_SendToReview(t *testing.T) {
	t.Run("should move valued result from analysis to review", func(t *testing.T) {
		result := newDraftResult(t)
		require.NoError(t, result.SetValue(floatPtr(95), "", ""))
		require.NoError(t, result.StartAnalysis())

		err := result.SendToReview("dr.revisor", time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.ResultAguardandoRevisao, result.Status())
	})

	t.Run("should fail without any value, text or report", func(t *testing.T) {
		result := newDraftResult(t)
		require.NoError(t, result.StartAnalysis())

		err := result.SendToReview("dr.revisor", time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("should accept a textual value alone", func(t *testing.T) {
		result := newDraftResult(t)
		require.NoError(t, result.SetValue(nil, "negativo", ""))
		require.NoError(t, result.StartAnalysis())

		err := result.SendToReview("dr.revisor", time.Now())

		require.NoError(t, err)
	})
}

func TestExamResult_Release(t *testing.T) {
	t.Run("should release QC approved result with signature", func(t *testing.T) {
		result := newReviewedResult(t, 95)

		err := result.Release("dr.liberador", "assinatura-abc", time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.ResultLiberado, result.Status())
		assert.Equal(t, "dr.liberador", result.LiberadoPor())
		assert.Equal(t, "assinatura-abc", result.AssinaturaDigital())
		assert.NotNil(t, result.DataLiberacao())
	})

	t.Run("should fail without QC approval", func(t *testing.T) {
		result := newDraftResult(t)
		require.NoError(t, result.SetValue(floatPtr(95), "", ""))
		require.NoError(t, result.StartAnalysis())
		require.NoError(t, result.SendToReview("dr.revisor", time.Now()))

		err := result.Release("dr.liberador", "assinatura-abc", time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
		assert.Contains(t, err.Error(), "qc_aprovado")
	})

	t.Run("should fail without digital signature", func(t *testing.T) {
		result := newReviewedResult(t, 95)

		err := result.Release("dr.liberador", "", time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("should fail when releaser is the QC approver", func(t *testing.T) {
		result := newReviewedResult(t, 95)

		err := result.Release("dr.revisor", "assinatura-abc", time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("should fail from draft", func(t *testing.T) {
		result := newDraftResult(t)

		err := result.Release("dr.liberador", "assinatura-abc", time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should freeze fields after release", func(t *testing.T) {
		result := newReviewedResult(t, 95)
		require.NoError(t, result.Release("dr.liberador", "assinatura-abc", time.Now()))

		err := result.SetValue(floatPtr(120), "", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestExamResult_Classification(t *testing.T) {
	// Glucose style bands: reference 70-99, critical at <=40 or >=500.
	prepare := func(t *testing.T, valor float64) *order.ExamResult {
		t.Helper()
		result := newDraftResult(t)
		require.NoError(t, result.SetReferenceRange(order.ReferenceRange{
			Min: floatPtr(70), Max: floatPtr(99),
		}))
		require.NoError(t, result.SetCriticalBand(order.CriticalBand{
			Min: floatPtr(40), Max: floatPtr(500),
		}))
		require.NoError(t, result.SetValue(floatPtr(valor), "", ""))
		require.NoError(t, result.StartAnalysis())
		require.NoError(t, result.SendToReview("dr.revisor", time.Now()))
		require.NoError(t, result.ApproveQC("dr.revisor", time.Now()))
		require.NoError(t, result.Release("dr.liberador", "assinatura-abc", time.Now()))
		return result
	}

	t.Run("should classify in-range value as normal", func(t *testing.T) {
		result := prepare(t, 85)

		assert.Equal(t, order.ClassificationNormal, result.Classificacao())
		assert.False(t, result.ForaReferencia())
		assert.False(t, result.IsCritical())
	})

	t.Run("should classify out-of-range value as alterado", func(t *testing.T) {
		result := prepare(t, 130)

		assert.Equal(t, order.ClassificationAlterado, result.Classificacao())
		assert.True(t, result.ForaReferencia())
		assert.False(t, result.IsCritical())
	})

	t.Run("should classify value at the critical band edge as critico", func(t *testing.T) {
		result := prepare(t, 500)

		assert.Equal(t, order.ClassificationCritico, result.Classificacao())
		assert.True(t, result.ForaReferencia())
		assert.True(t, result.IsCritical())
	})

	t.Run("should classify value below the lower critical bound as critico", func(t *testing.T) {
		result := prepare(t, 35)

		assert.Equal(t, order.ClassificationCritico, result.Classificacao())
		assert.True(t, result.IsCritical())
	})

	t.Run("should classify missing numeric value as normal", func(t *testing.T) {
		result := newDraftResult(t)
		require.NoError(t, result.SetValue(nil, "negativo", ""))
		require.NoError(t, result.StartAnalysis())
		require.NoError(t, result.SendToReview("dr.revisor", time.Now()))
		require.NoError(t, result.ApproveQC("dr.revisor", time.Now()))
		require.NoError(t, result.Release("dr.liberador", "assinatura-abc", time.Now()))

		assert.Equal(t, order.ClassificationNormal, result.Classificacao())
	})
}

func TestExamResult_Rectify(t *testing.T) {
	releaseAt := func(t *testing.T) *order.ExamResult {
		t.Helper()
		result := newReviewedResult(t, 95)
		require.NoError(t, result.Release("dr.liberador", "assinatura-abc", time.Now()))
		return result
	}

	t.Run("should snapshot and bump version on rectification", func(t *testing.T) {
		result := releaseAt(t)

		err := result.Rectify("dr.corretor", time.Now(), floatPtr(105), "", "")

		require.NoError(t, err)
		assert.Equal(t, order.ResultRetificado, result.Status())
		assert.Equal(t, 2, result.Versao())
		require.Len(t, result.HistoricoVersoes(), 1)
		snapshot := result.HistoricoVersoes()[0]
		assert.Equal(t, 1, snapshot.Versao)
		assert.Equal(t, float64(95), *snapshot.ValorNumerico)
		assert.Equal(t, float64(105), *result.ValorNumerico())
	})

	t.Run("should clear the QC and release state for the new version", func(t *testing.T) {
		result := releaseAt(t)

		require.NoError(t, result.Rectify("dr.corretor", time.Now(), floatPtr(105), "", ""))

		assert.False(t, result.QCAprovado())
		assert.Empty(t, result.LiberadoPor())
		assert.Empty(t, result.AssinaturaDigital())
		assert.Nil(t, result.DataLiberacao())
	})

	t.Run("should let the rectified version cross the QC gate again", func(t *testing.T) {
		result := releaseAt(t)
		require.NoError(t, result.Rectify("dr.corretor", time.Now(), floatPtr(105), "", ""))

		require.NoError(t, result.StartAnalysis())
		require.NoError(t, result.SendToReview("dr.revisor2", time.Now()))
		require.NoError(t, result.ApproveQC("dr.revisor2", time.Now()))
		require.NoError(t, result.Release("dr.liberador", "assinatura-v2", time.Now()))

		assert.Equal(t, order.ResultLiberado, result.Status())
		assert.Equal(t, 2, result.Versao())
		assert.Len(t, result.HistoricoVersoes(), 1)
	})

	t.Run("should fail to rectify an unreleased result", func(t *testing.T) {
		result := newDraftResult(t)

		err := result.Rectify("dr.corretor", time.Now(), floatPtr(105), "", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should accumulate snapshots across repeated rectifications", func(t *testing.T) {
		result := releaseAt(t)

		require.NoError(t, result.Rectify("dr.corretor", time.Now(), floatPtr(105), "", ""))
		require.NoError(t, result.StartAnalysis())
		require.NoError(t, result.SendToReview("dr.revisor2", time.Now()))
		require.NoError(t, result.ApproveQC("dr.revisor2", time.Now()))
		require.NoError(t, result.Release("dr.liberador", "assinatura-v2", time.Now()))
		require.NoError(t, result.Rectify("dr.corretor", time.Now(), floatPtr(110), "", ""))

		assert.Equal(t, 3, result.Versao())
		require.Len(t, result.HistoricoVersoes(), 2)
		assert.Equal(t, 1, result.HistoricoVersoes()[0].Versao)
		assert.Equal(t, 2, result.HistoricoVersoes()[1].Versao)
	})
}
