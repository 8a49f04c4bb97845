// Copyright 2016 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

/*
Package node owns the process-level resources of an ember instance: the data
directory, the chain database and the chain opened on top of it.

# Node Lifecycle

The Node object has a lifecycle consisting of three basic states, INITIALIZING, RUNNING
and CLOSED.

	●───────┐
	     New()
	        │
	        ▼
	  INITIALIZING ────Start()─┐
	        │                  │
	        │                  ▼
	    Close()             RUNNING
	        │                  │
	        ▼                  │
	     CLOSED ◀──────Close()─┘

Creating a Node locks the data directory and returns the node in its INITIALIZING
state. The chain is opened with OpenChain and Lifecycle objects are registered in this
state.

Starting the node starts all registered Lifecycle objects. No additional Lifecycles can
be registered while the node is running.

Closing the node stops the Lifecycle objects in reverse order, closes the chain together
with its database and finally releases the data directory lock. Every failure along the
way is collected into the returned error. You must always call Close on Node, even if the
node was not started.

# Data Directory

All file-system resources used by a node instance are located in a directory called the
data directory. The location of each resource can be overridden through additional node
configuration. The data directory is optional. If it is not set, the chain database is
held in memory and lost when the node stops.

The instance directory, a subdirectory of the data directory named after the instance,
holds the LOCK file and the chain database:

	data-directory/
	        ember/
	                LOCK         - file system lock of the instance directory
	                chaindata/   - leveldb or pebble content
*/
package node
