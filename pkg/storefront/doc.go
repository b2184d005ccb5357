// Package storefront provides the data-normalization and asset-publishing
// core of an e-commerce storefront backend.
//
// It exposes two cooperating pieces. The Publisher uploads binary assets to
// pluggable blob storage backends under deterministic {folder}/{name}.{ext}
// keys and returns stable public URLs; backends (memory, filesystem, S3,
// Cloudinary) live under the storage subpackage. The Normalize* functions
// convert the loosely-typed rows a Repository produces into fully-defaulted
// domain records: they are total over arbitrary input, so a missing, nil or
// wrongly-shaped field resolves to a documented default instead of an error.
//
// Repository implementations (memory, Postgres) live under the repo
// subpackage and deliberately return rows as map[string]any; the normalizer
// is the single place where schema drift between backends is absorbed.
package storefront
