// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

/*
Package websocket serves the conversational chat endpoint.

A client connects to /api/v1/chat/ws and sends JSON frames:

	{"text": "long week, feeling stressed", "city": "London", "user_id": "u1"}

For each frame the hub's Responder detects the mood, looks up the weather
and fetches recommendations. The reply is:

	{
	  "type": "chat",
	  "mood": "Stressed",
	  "weather": {"city": "London", "condition": "Rainy", "temperature_c": 12.3, "source": "openweather"},
	  "recommendations": [{"food_id": "...", "name": "...", "score": 0.82}],
	  "message": "Based on your conversation, I detect that you're feeling Stressed. ..."
	}

A frame of {"type": "ping"} is answered with {"type": "pong"}. Failures are
reported as {"type": "error", "error": "..."} and keep the connection open.

The hub also broadcasts {"type": "order_recorded", "order": {...}} to every
connected client when an order is accepted.

# Lifecycle

Hub implements suture.Service. Serve delivers broadcasts until its context
is canceled, then closes every client. Each Client runs a read pump, which
answers chat frames one at a time, and a write pump, which owns the
connection's writer and sends keepalive pings.
*/
package websocket
