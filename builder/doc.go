// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package builder edits one form at a time on top of a store.Store.

A Controller keeps the form in memory together with the selected section,
which is where AddInput puts new inputs. Every edit goes through formmodel,
so a rejected edit leaves the form as it was. Nothing reaches the store until
Save, which creates the form on first save and updates it afterwards:

	c := builder.New(s)
	c.SetTitle("Survey")
	c.AddInput(formmodel.InputSpec{Title: "Name", Required: true})
	c.AddSection("Demographics") // selected from here on
	c.AddInput(formmodel.InputSpec{Title: "Email", Type: models.InputEmail})
	form, err := c.Save(ctx)

The HTML builder pages and formctl both drive forms through a Controller.
*/
package builder
