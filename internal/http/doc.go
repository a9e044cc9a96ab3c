// Package http exposes the group scheduler over a JSON HTTP API.
//
// Endpoints:
//
//	POST   /users                     register an account
//	POST   /sessions                  log in and obtain a token
//	DELETE /sessions                  log out (clears the session cookie)
//	GET    /users/me                  current user's profile
//	GET    /groups                    groups the caller belongs to
//	POST   /groups                    create a group
//	GET    /groups/{id}               group detail
//	PUT    /groups/{id}               update a group
//	DELETE /groups/{id}               delete a group
//	GET    /groups/{id}/members       list members
//	DELETE /groups/{id}/members/{uid} remove a member
//	POST   /groups/{id}/invites       create an invite link
//	DELETE /groups/{id}/invites       revoke the active invite link
//	POST   /groups/join               join a group by invite code
//	GET    /groups/{id}/calendar.ics  group events as an iCalendar feed
//	POST   /busy                      declare a busy interval
//	GET    /busy                      list busy intervals for a group
//	DELETE /busy/{id}                 delete a busy interval
//	POST   /events                    create an event
//	GET    /events                    list events for a group
//	GET    /events/{id}               event detail
//	PUT    /events/{id}               update an event
//	DELETE /events/{id}               delete an event
//	POST   /assistant/query           natural language scheduling query
//	POST   /assistant/confirm         confirm a suggestion as an event
//	GET    /healthz                   liveness probe
//	GET    /metrics                   Prometheus metrics
package http
