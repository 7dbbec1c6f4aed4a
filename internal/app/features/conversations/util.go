// internal/app/features/conversations/util.go
package conversations

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/cityfix/internal/app/system/authz"
)

func callerID(r *http.Request) (primitive.ObjectID, bool) {
	_, _, id, ok := authz.UserCtx(r)
	return id, ok
}

func pathID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return id, err == nil
}

func rawQuery(r *http.Request) map[string]string {
	raw := make(map[string]string, len(r.URL.Query()))
	for k, vs := range r.URL.Query() {
		if len(vs) > 0 {
			raw[k] = vs[0]
		}
	}
	return raw
}
