/*
Package session hands out one tour engine per user session.

It lets a single server process drive independent tours for many users over
one shared backing store, scoping each user's persisted progress by key
namespace and garbage collecting idle engines via reference counting.
*/
package session
