package notify

import (
	"log"
	"net/http"
	"slices"
	"time"

	"mudra/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const writeWait = 10 * time.Second

// ServeOrderFeed upgrades an admin connection and streams order
// events until the client goes away.
func ServeOrderFeed(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		token := r.Header.Get("Authorization")
		if token == "" {
			// browsers cannot set headers on ws dials
			token = "Bearer " + r.URL.Query().Get("token")
		}
		claims, err := middleware.ValidateJWT(token)
		if err != nil || !slices.Contains(claims.Role, "admin") {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("order feed upgrade error:", err)
			return
		}

		client := &Client{Send: make(chan []byte, 16)}
		select {
		case hub.register <- client:
		case <-hub.done:
			conn.Close()
			return
		}

		go func() {
			defer func() {
				hub.drop(client)
				conn.Close()
			}()
			for data := range client.Send {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			}
			conn.WriteMessage(websocket.CloseMessage, []byte{})
		}()

		// reader just watches for close
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					hub.drop(client)
					return
				}
			}
		}()
	}
}
