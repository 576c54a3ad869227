package role

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdkiam "github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagingIAMClient behaves like the service: it honours MaxItems and Marker over
// a fixed list of policies.
type pagingIAMClient struct {
	policies []types.AttachedPolicy
	calls    int
}

func (c *pagingIAMClient) ListAttachedRolePolicies(
	_ context.Context,
	params *sdkiam.ListAttachedRolePoliciesInput,
	_ ...func(*sdkiam.Options),
) (*sdkiam.ListAttachedRolePoliciesOutput, error) {
	c.calls++

	start := 0
	if params.Marker != nil {
		n, err := strconv.Atoi(*params.Marker)
		if err != nil {
			return nil, errors.New("invalid marker")
		}
		start = n
	}
	size := 100
	if params.MaxItems != nil {
		size = int(*params.MaxItems)
	}
	end := min(start+size, len(c.policies))

	out := &sdkiam.ListAttachedRolePoliciesOutput{
		AttachedPolicies: c.policies[start:end],
	}
	if end < len(c.policies) {
		out.IsTruncated = true
		out.Marker = aws.String(strconv.Itoa(end))
	}
	return out, nil
}

func policiesNamed(n int) []types.AttachedPolicy {
	out := make([]types.AttachedPolicy, n)
	for i := range out {
		out[i] = attached("Policy" + strconv.Itoa(i))
	}
	return out
}

func TestPagesFollowsMarkers(t *testing.T) {
	client := &pagingIAMClient{policies: policiesNamed(5)}
	q := PolicyQuery{RoleName: "eks-admin-role", MaxItems: aws.Int32(2)}

	var sizes []int
	seen := map[string]bool{}
	for page, err := range Pages(context.Background(), client, q) {
		require.NoError(t, err)
		assert.LessOrEqual(t, len(page.AttachedPolicies), 2)
		for _, p := range page.AttachedPolicies {
			arn := aws.ToString(p.PolicyArn)
			assert.False(t, seen[arn], "duplicate %s across pages", arn)
			seen[arn] = true
		}
		sizes = append(sizes, len(page.AttachedPolicies))
	}

	assert.Equal(t, []int{2, 2, 1}, sizes)
	assert.Len(t, seen, 5)
	assert.Equal(t, 3, client.calls)
}

func TestPagesTruncationFlag(t *testing.T) {
	client := &pagingIAMClient{policies: policiesNamed(4)}

	first, err := ListAttachedPolicies(context.Background(), client, PolicyQuery{RoleName: "r", MaxItems: aws.Int32(4)})
	require.NoError(t, err)
	assert.False(t, first.IsTruncated)
	assert.Nil(t, first.Marker)

	first, err = ListAttachedPolicies(context.Background(), client, PolicyQuery{RoleName: "r", MaxItems: aws.Int32(3)})
	require.NoError(t, err)
	assert.True(t, first.IsTruncated)
	assert.Equal(t, "3", aws.ToString(first.Marker))
}

func TestPagesIsRestartable(t *testing.T) {
	client := &pagingIAMClient{policies: policiesNamed(3)}
	seq := Pages(context.Background(), client, PolicyQuery{RoleName: "r", MaxItems: aws.Int32(2)})

	count := func() int {
		n := 0
		for page, err := range seq {
			require.NoError(t, err)
			n += len(page.AttachedPolicies)
		}
		return n
	}
	assert.Equal(t, 3, count())
	assert.Equal(t, 3, count())
	assert.Equal(t, 4, client.calls)
}

func TestPagesStopsEarly(t *testing.T) {
	client := &pagingIAMClient{policies: policiesNamed(10)}
	for range Pages(context.Background(), client, PolicyQuery{RoleName: "r", MaxItems: aws.Int32(2)}) {
		break
	}
	assert.Equal(t, 1, client.calls)
}

func TestPagesYieldsErrorOnce(t *testing.T) {
	boom := errors.New("throttled")
	client := &mockIAMClient{
		Responses: []*sdkiam.ListAttachedRolePoliciesOutput{{
			AttachedPolicies: []types.AttachedPolicy{attached("A")},
			Marker:           aws.String("m1"),
			IsTruncated:      true,
		}},
		Errors: []error{nil, boom},
	}

	var errs []error
	pages := 0
	for page, err := range Pages(context.Background(), client, PolicyQuery{RoleName: "r"}) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		pages++
		assert.NotNil(t, page)
	}
	assert.Equal(t, 1, pages)
	require.Len(t, errs, 1)
	assert.Same(t, boom, errs[0])
	require.Len(t, client.Inputs, 2)
	assert.Equal(t, "m1", aws.ToString(client.Inputs[1].Marker))
}

func TestPagesRepeatedMarker(t *testing.T) {
	loop := &sdkiam.ListAttachedRolePoliciesOutput{
		AttachedPolicies: []types.AttachedPolicy{attached("A")},
		Marker:           aws.String("same"),
		IsTruncated:      true,
	}
	client := &mockIAMClient{Responses: []*sdkiam.ListAttachedRolePoliciesOutput{loop, loop, loop}}

	_, err := CollectPolicies(context.Background(), client, PolicyQuery{RoleName: "r"})
	require.ErrorIs(t, err, ErrRepeatedMarker)
	assert.Len(t, client.Inputs, 2)
}

func TestPagesStartingMarkerReturnedAgain(t *testing.T) {
	back := &sdkiam.ListAttachedRolePoliciesOutput{
		AttachedPolicies: []types.AttachedPolicy{attached("A")},
		Marker:           aws.String("start"),
		IsTruncated:      true,
	}
	client := &mockIAMClient{Responses: []*sdkiam.ListAttachedRolePoliciesOutput{back, back}}

	_, err := CollectPolicies(context.Background(), client, PolicyQuery{RoleName: "r", Marker: aws.String("start")})
	require.ErrorIs(t, err, ErrRepeatedMarker)
	assert.Len(t, client.Inputs, 1)
}

func TestPagesTruncatedWithoutMarkerStops(t *testing.T) {
	client := &mockIAMClient{Responses: []*sdkiam.ListAttachedRolePoliciesOutput{{
		AttachedPolicies: []types.AttachedPolicy{attached("A")},
		IsTruncated:      true,
	}}}

	got, err := CollectPolicies(context.Background(), client, PolicyQuery{RoleName: "r"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Len(t, client.Inputs, 1)
}

func TestCollectPolicies(t *testing.T) {
	client := &pagingIAMClient{policies: policiesNamed(7)}

	got, err := CollectPolicies(context.Background(), client, PolicyQuery{RoleName: "r", MaxItems: aws.Int32(3)})
	require.NoError(t, err)
	names := lo.Map(got, func(p types.AttachedPolicy, _ int) string { return aws.ToString(p.PolicyName) })
	assert.Equal(t, []string{"Policy0", "Policy1", "Policy2", "Policy3", "Policy4", "Policy5", "Policy6"}, names)

	empty := &mockIAMClient{}
	got, err = CollectPolicies(context.Background(), empty, PolicyQuery{RoleName: "r"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
