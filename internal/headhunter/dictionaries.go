package headhunter

import "context"

// Dictionaries returns the hh.ru reference dictionaries trimmed to the sets
// the search filters use. Token-free endpoint.
func (c *Client) Dictionaries(ctx context.Context) (map[string]any, error) {
	var data map[string]any
	if err := c.getJSON(ctx, "", c.APIURL+"/dictionaries", nil, &data); err != nil {
		return nil, err
	}

	return map[string]any{
		"experience": data["experience"],
		"employment": data["employment"],
		"schedule":   data["schedule"],
	}, nil
}

// Areas returns the hh.ru area tree (countries/regions/cities). Token-free
// endpoint.
func (c *Client) Areas(ctx context.Context) ([]any, error) {
	var data []any
	if err := c.getJSON(ctx, "", c.APIURL+"/areas", nil, &data); err != nil {
		return nil, err
	}

	return data, nil
}
