package rules

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateReturnsOutputMap(t *testing.T) {
	e := NewExprEvaluator(0)

	out, err := e.Evaluate(context.Background(),
		`{"completed": answeredCount == questionCount, "score": totalScore}`,
		map[string]interface{}{"answeredCount": 2, "questionCount": 2, "totalScore": 5})
	require.NoError(t, err)
	assert.Equal(t, true, out["completed"])
	assert.Equal(t, 5, out["score"])
}

func TestEvaluateRejectsNonMapResult(t *testing.T) {
	e := NewExprEvaluator(0)

	_, err := e.Evaluate(context.Background(), `1 + 1`, map[string]interface{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output map")
}

func TestEvaluateReportsCompileFailure(t *testing.T) {
	e := NewExprEvaluator(0)

	_, err := e.Evaluate(context.Background(), `completed &&`, map[string]interface{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not compile")
}

func TestEvaluateReportsRuntimeFailure(t *testing.T) {
	e := NewExprEvaluator(0)

	_, err := e.Evaluate(context.Background(), `{"score": xs[10]}`,
		map[string]interface{}{"xs": []int{1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runtime failure")
}

func TestEvaluateDivisionByZeroYieldsNoScore(t *testing.T) {
	e := NewExprEvaluator(0)

	// Division is carried out in float64, so x/0 evaluates to +Inf rather
	// than failing; the output decoder must refuse it as a score.
	out, err := e.Evaluate(context.Background(), `{"score": x / y, "completed": true}`,
		map[string]interface{}{"x": 1, "y": 0})
	require.NoError(t, err)

	_, err = RequireInt(out, "score")
	require.Error(t, err)
}

func TestEvaluateHonorsBudget(t *testing.T) {
	e := NewExprEvaluator(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Evaluate(ctx, `{"score": 1}`, map[string]interface{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execution budget")
}

func TestRequireBool(t *testing.T) {
	v, err := RequireBool(map[string]interface{}{"completed": true}, "completed")
	require.NoError(t, err)
	assert.True(t, v)

	_, err = RequireBool(map[string]interface{}{}, "completed")
	require.Error(t, err)

	_, err = RequireBool(map[string]interface{}{"completed": 1}, "completed")
	require.Error(t, err)
}

func TestRequireInt(t *testing.T) {
	v, err := RequireInt(map[string]interface{}{"score": 7}, "score")
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = RequireInt(map[string]interface{}{"score": float64(3)}, "score")
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = RequireInt(map[string]interface{}{"score": 3.5}, "score")
	require.Error(t, err)

	_, err = RequireInt(map[string]interface{}{"score": math.Inf(1)}, "score")
	require.Error(t, err)

	_, err = RequireInt(map[string]interface{}{"score": math.NaN()}, "score")
	require.Error(t, err)

	_, err = RequireInt(map[string]interface{}{}, "score")
	require.Error(t, err)
}

func TestRequireNullableID(t *testing.T) {
	id, err := RequireNullableID(map[string]interface{}{"nextScreeningId": nil}, "nextScreeningId")
	require.NoError(t, err)
	assert.Nil(t, id)

	id, err = RequireNullableID(map[string]interface{}{"nextScreeningId": 4}, "nextScreeningId")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.EqualValues(t, 4, *id)

	_, err = RequireNullableID(map[string]interface{}{"nextScreeningId": 0}, "nextScreeningId")
	require.Error(t, err)

	_, err = RequireNullableID(map[string]interface{}{}, "nextScreeningId")
	require.Error(t, err)
}
