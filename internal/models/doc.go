// Package models defines the core domain models for the canteen.
//
// # Models
//
//   - MenuItem: a purchasable item in the catalog
//   - CartLine: a requested (item id, quantity) pair, never persisted
//   - OrderItem: a priced snapshot of one cart line at order time
//   - Order: a placed order with its items, total and status
//
// # Design Principles
//
// 1. **Snapshots over references**: orders copy name and price from the menu so
// later catalog edits never rewrite history
// 2. **Integer ids**: menu items and orders have independent, monotonically
// assigned sequences
// 3. **JSON shape is the storage shape**: the same field names are used on the
// wire and in every persistence backend
package models
