package mysql

const upsertHotelSQL = `
INSERT INTO hotels (id, name, category, price, rating, facilities, address, lat, lng, contact, image, traveloka, agoda, map_link)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name=VALUES(name),
  category=VALUES(category),
  price=VALUES(price),
  rating=VALUES(rating),
  facilities=VALUES(facilities),
  address=VALUES(address),
  lat=VALUES(lat),
  lng=VALUES(lng),
  contact=VALUES(contact),
  image=VALUES(image),
  traveloka=VALUES(traveloka),
  agoda=VALUES(agoda),
  map_link=VALUES(map_link)
`

// Reviews are replaced wholesale per hotel; position keeps fixture order.
const deleteReviewsSQL = `DELETE FROM reviews WHERE hotel_id = ?`

const insertReviewsPrefix = `
INSERT INTO reviews (hotel_id, position, author, comment, rating, reviewed_at)
VALUES `

const hotelColumns = `
  h.id, h.name, h.category, h.price, h.rating, h.facilities, h.address,
  h.lat, h.lng, h.contact, h.image, h.traveloka, h.agoda, h.map_link`

const listHotelsSQL = `SELECT` + hotelColumns + `
FROM hotels h
ORDER BY h.id`

const getHotelSQL = `SELECT` + hotelColumns + `
FROM hotels h
WHERE h.id = ?`

const listAllReviewsSQL = `
SELECT hotel_id, author, comment, rating, reviewed_at
FROM reviews
ORDER BY hotel_id, position`

const listReviewsByHotelSQL = `
SELECT hotel_id, author, comment, rating, reviewed_at
FROM reviews
WHERE hotel_id = ?
ORDER BY position`

// Newest first; undated reviews sort last.
const listReviewsPageSQL = `
SELECT hotel_id, author, comment, rating, reviewed_at
FROM reviews
WHERE hotel_id = ?
ORDER BY reviewed_at IS NULL, reviewed_at DESC, position
LIMIT ?`
