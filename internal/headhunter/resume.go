package headhunter

import (
	"context"
	"fmt"
)

type resumeList struct {
	Items []struct {
		ID string `json:"id"`
	} `json:"items"`
}

// FetchResume returns the full detail of the user's first resume. A user
// without resumes is a normal condition, reported as (nil, nil) rather than
// an error.
func (c *Client) FetchResume(ctx context.Context, token string) (map[string]any, error) {
	var list resumeList
	if err := c.getJSON(ctx, token, c.APIURL+"/resumes/mine", nil, &list); err != nil {
		return nil, err
	}

	if len(list.Items) == 0 {
		return nil, nil
	}

	var resume map[string]any
	detailURL := fmt.Sprintf("%s/resumes/%s", c.APIURL, list.Items[0].ID)
	if err := c.getJSON(ctx, token, detailURL, nil, &resume); err != nil {
		return nil, err
	}

	return resume, nil
}
