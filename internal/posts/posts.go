// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package posts proxies the upstream post collection.

Listings come in three shapes: the first [FirstPageSize] posts, an upstream
page selected with page/limit, or every post by one user.
*/
package posts

// FirstPageSize is the number of posts returned by an unparameterised listing.
const FirstPageSize = 10

// Post is an upstream post record.
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}
