package httpserver

import (
	"net/http"
	"strconv"

	syncsvc "channelengine-sync/internal/service/sync"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func loginPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "login.html", gin.H{})
	}
}

func loginSubmitHandler(svc LoginService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountName := c.PostForm("account_name")
		apiKey := c.PostForm("api_key")

		ok, err := svc.Login(c.Request.Context(), accountName, apiKey)
		if err != nil {
			logger.WithError(err).Error("admin: persist credentials")
			c.HTML(http.StatusInternalServerError, "login.html", gin.H{
				"Error":       "Could not save credentials, please try again.",
				"AccountName": accountName,
			})
			return
		}
		if !ok {
			c.HTML(http.StatusOK, "login.html", gin.H{
				"Error":       "Invalid account name or API key.",
				"AccountName": accountName,
			})
			return
		}

		c.Redirect(http.StatusSeeOther, "/admin/sync")
	}
}

func syncPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "sync.html", gin.H{
			"SyncURL": "/admin/sync/start",
		})
	}
}

// syncAllHandler always answers 200; success or failure is an
// application-level fact carried in the JSON body, which is what the sync
// page's script inspects.
func syncAllHandler(svc SyncService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.SyncAll(c.Request.Context()))
	}
}

func syncOneHandler(svc SyncService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, syncsvc.Result{Success: false, Message: "invalid product id"})
			return
		}
		c.JSON(http.StatusOK, svc.SyncOne(c.Request.Context(), id))
	}
}
