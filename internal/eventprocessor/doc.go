// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

// Package eventprocessor carries recorded orders from the API to the store
// through NATS JetStream using Watermill.
//
// # Flow
//
//	POST /api/v1/orders
//	        │
//	        ▼
//	  Publisher ──(gobreaker)──► JetStream stream FOODAWARE_ORDERS
//	                                     │  subject orders.recorded
//	                                     ▼
//	                         Subscriber (durable, queue group)
//	                                     │
//	                                     ▼
//	                  Router: Recoverer → Retry → permanent filter
//	                                     │
//	                                     ▼
//	                       OrderHandler → OrderWriter.InsertOrder
//
// The publisher sets Nats-Msg-Id to the order ID, so JetStream drops
// duplicate publishes inside the dedup window. Stores insert with
// ON CONFLICT DO NOTHING, so a redelivered message is also harmless.
//
// An embedded nats-server with JetStream is started when no external
// server is configured. Malformed payloads are acked and counted rather
// than retried.
package eventprocessor
