package context

import (
	"context"

	"github.com/kartanikah/wedding-commerce/constant"
)

// GetUserID returns the external auth subject embedded by the auth
// middleware, if any.
func GetUserID(ctx context.Context) (string, bool) {
	v := ctx.Value(constant.UserIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
