package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"feedboard/apierror"
	"feedboard/middleware"
)

// currentUserID resolves the identity the auth middleware attached to the
// request. A valid token always carries a well-formed id, so a decode
// failure here means the request never passed the gate.
func currentUserID(c *gin.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.GetString(middleware.UserIDKey))
	if err != nil {
		return primitive.NilObjectID, apierror.Unauthenticated("invalid user identity")
	}
	return id, nil
}
