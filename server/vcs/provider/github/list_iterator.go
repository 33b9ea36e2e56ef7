package github

import (
	"context"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v45/github"
	"github.com/pkg/errors"
)

// Iterate pages through a GitHub list endpoint, applying processFunc to each
// page of results.
func Iterate[T any, R any](
	ctx context.Context,
	runFunc func(ctx context.Context, nextPage int) ([]T, *gh.Response, error),
	processFunc func([]T) []R) ([]R, error) {

	var output []R
	nextPage := 0
	for {
		results, resp, err := runFunc(ctx, nextPage)
		if err != nil {
			return nil, errors.Wrap(err, "error running gh api call")
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("not ok status running gh api call: %s", resp.Status)
		}
		output = append(output, processFunc(results)...)
		if resp.NextPage == 0 {
			break
		}
		nextPage = resp.NextPage
	}
	return output, nil
}
