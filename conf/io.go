// Configuration loading and dumping
//
// Copyright (c) 2026  The xqarbiter contributors
//
// This file is part of xqarbiter.
//
// xqarbiter is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// xqarbiter is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with xqarbiter. If not, see
// <http://www.gnu.org/licenses/>

package conf

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Open reads and decodes a TOML configuration file at name, layering
// its values over Default(). A missing file is not an error: callers
// get Default() back unchanged.
func Open(name string) (*Conf, error) {
	c := Default()

	file, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, err
	}
	defer file.Close()

	if _, err := toml.NewDecoder(file).Decode(c); err != nil {
		return nil, err
	}
	c.file = name
	return c, nil
}

// Dump serialises c as TOML to wr, the counterpart to Open used by
// -dump-config.
func (c *Conf) Dump(wr io.Writer) error {
	return toml.NewEncoder(wr).Encode(c)
}
