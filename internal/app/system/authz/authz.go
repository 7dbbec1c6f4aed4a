// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/cityfix/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the caller's account type, name, Mongo ObjectID, and a
// found flag. If no user is present in context or the user ID is malformed,
// it returns "", "", NilObjectID, false, so ok=true always means a valid,
// authenticated caller with a usable ObjectID.
func UserCtx(r *http.Request) (accountType string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session. Fail closed.
		return "", "", primitive.NilObjectID, false
	}
	return user.Role, user.Name, userID, true
}
