package netki

import (
	"encoding/json"
	"fmt"
	"reflect"

	"go.uber.org/mock/gomock"
)

const (
	testAPIURL    = "https://api.example.test"
	testAPIKey    = "api_key"
	testPartnerID = "partner_id"
)

func testAuth() AuthContext {
	return NewAuthContext(testAPIURL, testAPIKey, testPartnerID)
}

// jsonBody matches a request body by JSON value rather than by bytes.
type jsonBody struct {
	want any
}

func JSONBody(want string) gomock.Matcher {
	var v any
	if err := json.Unmarshal([]byte(want), &v); err != nil {
		panic(fmt.Sprintf("invalid expected JSON %q: %v", want, err))
	}
	return jsonBody{want: v}
}

func (m jsonBody) Matches(x any) bool {
	body, ok := x.([]byte)
	if !ok || body == nil {
		return false
	}
	var got any
	if err := json.Unmarshal(body, &got); err != nil {
		return false
	}
	return reflect.DeepEqual(m.want, got)
}

func (m jsonBody) String() string {
	return fmt.Sprintf("is JSON equal to %v", m.want)
}

// nilBody matches a request that carries no body.
type nilBody struct{}

func (nilBody) Matches(x any) bool {
	body, ok := x.([]byte)
	return ok && body == nil
}

func (nilBody) String() string {
	return "is a nil body"
}
